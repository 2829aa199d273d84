// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"morphecms/internal/models"
)

func TestTermStoreCRUD(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	for _, s := range []*TermStore{NewCategoryStore(db), NewTagStore(db)} {
		t.Run(string(s.Kind()), func(t *testing.T) {
			table := s.table
			t.Cleanup(func() { cleanSlugs(t, db, table, "store-term-a", "store-term-b") })

			desc := "first"
			created, err := s.Create(ctx, &models.Term{Name: "Term A", Slug: "store-term-a", Description: &desc})
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if created.ID == uuid.Nil || created.Slug != "store-term-a" {
				t.Fatalf("Create: got %+v", created)
			}

			_, err = s.Create(ctx, &models.Term{Name: "Term A again", Slug: "store-term-a"})
			if !errors.Is(err, ErrUniqueViolation) {
				t.Fatalf("duplicate slug: got %v, want ErrUniqueViolation", err)
			}

			owner, ok, err := s.SlugOwner(ctx, "store-term-a")
			if err != nil || !ok || owner != created.ID {
				t.Fatalf("SlugOwner: %v %v %v", owner, ok, err)
			}

			created.Name = "Term B"
			created.Slug = "store-term-b"
			updated, err := s.Update(ctx, created)
			if err != nil {
				t.Fatalf("Update: %v", err)
			}
			if updated.Name != "Term B" || updated.Slug != "store-term-b" {
				t.Errorf("Update: got %+v", updated)
			}

			got, err := s.FindByID(ctx, created.ID)
			if err != nil || got == nil {
				t.Fatalf("FindByID: %v %v", got, err)
			}
			if got.Posts == nil || got.PostCount != 0 {
				t.Errorf("fresh term: posts=%v count=%d", got.Posts, got.PostCount)
			}

			n, err := s.CountExisting(ctx, []uuid.UUID{created.ID, uuid.New()})
			if err != nil || n != 1 {
				t.Errorf("CountExisting: got %d, %v; want 1", n, err)
			}

			ok, err = s.Delete(ctx, created.ID)
			if err != nil || !ok {
				t.Fatalf("Delete: ok=%v err=%v", ok, err)
			}
			missing, err := s.FindBySlug(ctx, "store-term-b")
			if err != nil || missing != nil {
				t.Errorf("FindBySlug after delete: %v %v", missing, err)
			}
		})
	}
}

func TestTermStoreDeleteReferenced(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	author := testAuthor(t, db)
	cats := NewCategoryStore(db)
	posts := NewPostStore(db)

	t.Cleanup(func() {
		cleanSlugs(t, db, "posts", "store-ref-post")
		cleanSlugs(t, db, "categories", "store-ref-cat")
	})

	cat, err := cats.Create(ctx, &models.Term{Name: "Ref", Slug: "store-ref-cat"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	_, err = posts.Create(ctx, &models.Post{
		Title:    "Ref",
		Slug:     "store-ref-post",
		Content:  "x",
		Status:   models.PostStatusDraft,
		AuthorID: author.ID,
	}, PostLinks{CategoryIDs: []uuid.UUID{cat.ID}})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	n, err := cats.CountPosts(ctx, cat.ID)
	if err != nil || n != 1 {
		t.Fatalf("CountPosts: got %d, %v; want 1", n, err)
	}

	_, err = cats.Delete(ctx, cat.ID)
	if !errors.Is(err, ErrForeignKeyViolation) {
		t.Fatalf("Delete referenced: got %v, want ErrForeignKeyViolation", err)
	}

	still, err := cats.FindByID(ctx, cat.ID)
	if err != nil || still == nil {
		t.Fatalf("category removed despite reference: %v %v", still, err)
	}
	if len(still.Posts) != 1 || still.Posts[0].Slug != "store-ref-post" {
		t.Errorf("posts: got %+v", still.Posts)
	}
}

func TestTermStorePublishedCounts(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	author := testAuthor(t, db)
	tags := NewTagStore(db)
	posts := NewPostStore(db)

	t.Cleanup(func() {
		cleanSlugs(t, db, "posts", "store-count-pub", "store-count-draft")
		cleanSlugs(t, db, "tags", "store-count-tag")
	})

	tag, err := tags.Create(ctx, &models.Term{Name: "Counted", Slug: "store-count-tag"})
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	past := time.Now().Add(-time.Minute)
	links := PostLinks{TagIDs: []uuid.UUID{tag.ID}}
	if _, err := posts.Create(ctx, &models.Post{
		Title:       "Pub",
		Slug:        "store-count-pub",
		Content:     "x",
		Status:      models.PostStatusPublished,
		PublishedAt: &past,
		AuthorID:    author.ID,
	}, links); err != nil {
		t.Fatalf("create published: %v", err)
	}
	if _, err := posts.Create(ctx, &models.Post{
		Title:    "Draft",
		Slug:     "store-count-draft",
		Content:  "x",
		Status:   models.PostStatusDraft,
		AuthorID: author.ID,
	}, links); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	count := func(published bool) int {
		items, _, err := tags.List(ctx, TermQuery{PublishedCounts: published, Page: Page{Limit: 1000}})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		for _, it := range items {
			if it.ID == tag.ID {
				return it.PostCount
			}
		}
		t.Fatal("tag missing from listing")
		return 0
	}

	if got := count(false); got != 2 {
		t.Errorf("admin count: got %d, want 2", got)
	}
	if got := count(true); got != 1 {
		t.Errorf("public count: got %d, want 1", got)
	}
}
