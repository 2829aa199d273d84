// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"morphecms/internal/models"
)

func TestPostCreateDerivesSlugAndDefaults(t *testing.T) {
	f := newFixture(t)

	p := f.createPost(t, "Hello, World!", "")

	assert.Equal(t, "hello-world", p.Slug)
	assert.Equal(t, models.PostStatusDraft, p.Status)
	assert.Nil(t, p.PublishedAt)
	assert.Equal(t, f.author.UserID, p.AuthorID)
	require.NotNil(t, p.Author)
	assert.Equal(t, "Ada", p.Author.Name)
}

func TestPostCreateDuplicateSlug(t *testing.T) {
	f := newFixture(t)
	f.createPost(t, "Hello, World!", "")

	_, err := f.posts.Create(context.Background(), f.author, CreatePostInput{Title: "Hello World", Content: "x"})

	var dup *DuplicateSlugError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "hello-world", dup.Slug)
	assert.Equal(t, "post", dup.Entity)

	page, err := f.posts.List(context.Background(), PostFilter{}, PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Pagination.Total, "failed create must not persist")
}

func TestPostCreateDuplicateSlugAtWriteTime(t *testing.T) {
	f := newFixture(t)
	f.createPost(t, "Race Condition", "")
	f.mem.SkipSlugCheck = true

	_, err := f.posts.Create(context.Background(), f.author, CreatePostInput{Title: "Race condition!", Content: "x"})

	var dup *DuplicateSlugError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "race-condition", dup.Slug)
}

func TestPostCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		in    CreatePostInput
		field string
	}{
		{"missing title", CreatePostInput{Content: "x"}, "title"},
		{"blank title", CreatePostInput{Title: "   ", Content: "x"}, "title"},
		{"missing content", CreatePostInput{Title: "T"}, "content"},
		{"bad status", CreatePostInput{Title: "T", Content: "x", Status: "ARCHIVED"}, "status"},
		{"title without letters", CreatePostInput{Title: "!!!", Content: "x"}, "title"},
		{"unknown category", CreatePostInput{Title: "T", Content: "x", CategoryIDs: []uuid.UUID{randomID()}}, "categoryIds"},
		{"unknown tag", CreatePostInput{Title: "T", Content: "x", TagIDs: []uuid.UUID{randomID()}}, "tagIds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.posts.Create(ctx, f.author, tt.in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestPostCreateRequiresPrincipal(t *testing.T) {
	f := newFixture(t)
	_, err := f.posts.Create(context.Background(), models.Principal{}, CreatePostInput{Title: "T", Content: "x"})
	assert.ErrorIs(t, err, ErrUnauthenticated)

	err = f.posts.Delete(context.Background(), models.Principal{}, randomID())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestPostCreatePublishedStampsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.createPost(t, "Launch", models.PostStatusPublished)
	require.NotNil(t, p.PublishedAt)
	first := *p.PublishedAt
	assert.True(t, first.Equal(f.clock.now()))

	f.clock.advance(time.Hour)
	p, err := f.posts.Update(ctx, f.author, p.ID, UpdatePostInput{Status: ptr(models.PostStatusPublished)})
	require.NoError(t, err)
	assert.True(t, first.Equal(*p.PublishedAt), "re-publishing moved publishedAt")
}

func TestPostPublishTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := f.createPost(t, "Draft First", "")
	require.Nil(t, p.PublishedAt)

	f.clock.advance(time.Minute)
	p, err := f.posts.Update(ctx, f.author, p.ID, UpdatePostInput{Status: ptr(models.PostStatusPublished)})
	require.NoError(t, err)
	require.NotNil(t, p.PublishedAt)
	first := *p.PublishedAt

	// Unpublish and publish again: the original stamp stays.
	f.clock.advance(time.Minute)
	_, err = f.posts.Update(ctx, f.author, p.ID, UpdatePostInput{Status: ptr(models.PostStatusDraft)})
	require.NoError(t, err)
	f.clock.advance(time.Minute)
	p, err = f.posts.Update(ctx, f.author, p.ID, UpdatePostInput{Status: ptr(models.PostStatusPublished)})
	require.NoError(t, err)

	require.NotNil(t, p.PublishedAt)
	assert.True(t, first.Equal(*p.PublishedAt))
}

func TestPostUpdateOwnTitleIsNotDuplicate(t *testing.T) {
	f := newFixture(t)
	p := f.createPost(t, "Same Title", "")

	got, err := f.posts.Update(context.Background(), f.author, p.ID, UpdatePostInput{Title: ptr("Same Title")})
	require.NoError(t, err)
	assert.Equal(t, "same-title", got.Slug)
}

func TestPostUpdateRegeneratesSlug(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPost(t, "Old Name", "")
	f.createPost(t, "Taken Name", "")

	got, err := f.posts.Update(ctx, f.author, p.ID, UpdatePostInput{Title: ptr("New  Name")})
	require.NoError(t, err)
	assert.Equal(t, "new-name", got.Slug)
	assert.Equal(t, "New  Name", got.Title)

	_, err = f.posts.Update(ctx, f.author, p.ID, UpdatePostInput{Title: ptr("Taken name")})
	var dup *DuplicateSlugError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "taken-name", dup.Slug)

	unchanged, err := f.posts.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "new-name", unchanged.Slug)
}

func TestPostUpdatePartial(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPost(t, "Partial", "")

	got, err := f.posts.Update(ctx, f.author, p.ID, UpdatePostInput{Excerpt: ptr("short")})
	require.NoError(t, err)
	assert.Equal(t, "Partial", got.Title)
	assert.Equal(t, p.Content, got.Content)
	require.NotNil(t, got.Excerpt)
	assert.Equal(t, "short", *got.Excerpt)

	_, err = f.posts.Update(ctx, f.author, p.ID, UpdatePostInput{Content: ptr("  ")})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "content", verr.Field)

	_, err = f.posts.Update(ctx, f.author, randomID(), UpdatePostInput{Title: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostLinks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	news, err := f.cats.Create(ctx, CreateTermInput{Name: "News"})
	require.NoError(t, err)
	golang, err := f.tags.Create(ctx, CreateTermInput{Name: "Go"})
	require.NoError(t, err)

	p, err := f.posts.Create(ctx, f.author, CreatePostInput{
		Title:       "Linked",
		Content:     "x",
		CategoryIDs: []uuid.UUID{news.ID, news.ID},
		TagIDs:      []uuid.UUID{golang.ID},
	})
	require.NoError(t, err)
	require.Len(t, p.Categories, 1, "duplicate ids collapse")
	assert.Equal(t, "news", p.Categories[0].Slug)
	require.Len(t, p.Tags, 1)

	// Omitted lists keep links; an empty list clears them.
	p, err = f.posts.Update(ctx, f.author, p.ID, UpdatePostInput{TagIDs: []uuid.UUID{}})
	require.NoError(t, err)
	assert.Len(t, p.Categories, 1)
	assert.Empty(t, p.Tags)
}

func TestPostDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.createPost(t, "Short Lived", "")

	require.NoError(t, f.posts.Delete(ctx, f.author, p.ID))
	_, err := f.posts.Get(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.posts.Delete(ctx, f.author, p.ID), ErrNotFound)
}

func TestPostListPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, title := range []string{"One", "Two", "Three", "Four", "Five"} {
		f.createPost(t, title, "")
	}

	page, err := f.posts.List(ctx, PostFilter{}, PageRequest{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, Pagination{Page: 3, Limit: 10, Total: 5, TotalPages: 1}, page.Pagination)

	page, err = f.posts.List(ctx, PostFilter{}, PageRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "three", page.Items[0].Slug, "newest first")
	assert.Equal(t, 3, page.Pagination.TotalPages)

	_, err = f.posts.List(ctx, PostFilter{Status: "NOPE"}, PageRequest{})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestPostPublicVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.createPost(t, "Hidden Draft", "")
	older := f.createPost(t, "Older News", models.PostStatusPublished)
	f.clock.advance(time.Hour)
	newer := f.createPost(t, "Newer News", models.PostStatusPublished)

	page, err := f.posts.ListPublished(ctx, PublicPostFilter{}, PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, newer.ID, page.Items[0].ID)
	assert.Equal(t, older.ID, page.Items[1].ID)
	for _, p := range page.Items {
		require.NotNil(t, p.Author)
		assert.Empty(t, p.Author.Email, "public listing leaks author email")
	}

	got, err := f.posts.GetPublishedBySlug(ctx, "newer-news")
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)

	_, err = f.posts.GetPublishedBySlug(ctx, "hidden-draft")
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = f.posts.GetPublishedBySlug(ctx, "no-such-post")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostPublicFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cat, err := f.cats.Create(ctx, CreateTermInput{Name: "Engineering"})
	require.NoError(t, err)
	tag, err := f.tags.Create(ctx, CreateTermInput{Name: "Release Notes"})
	require.NoError(t, err)

	_, err = f.posts.Create(ctx, f.author, CreatePostInput{
		Title:       "Filed",
		Content:     "x",
		Status:      models.PostStatusPublished,
		CategoryIDs: []uuid.UUID{cat.ID},
		TagIDs:      []uuid.UUID{tag.ID},
	})
	require.NoError(t, err)
	f.createPost(t, "Unfiled", models.PostStatusPublished)

	byCat, err := f.posts.ListPublished(ctx, PublicPostFilter{CategorySlug: "engineering"}, PageRequest{})
	require.NoError(t, err)
	require.Len(t, byCat.Items, 1)
	assert.Equal(t, "filed", byCat.Items[0].Slug)

	byTag, err := f.posts.ListPublished(ctx, PublicPostFilter{TagSlug: "release-notes"}, PageRequest{})
	require.NoError(t, err)
	assert.Len(t, byTag.Items, 1)

	none, err := f.posts.ListPublished(ctx, PublicPostFilter{CategorySlug: "engineering", TagSlug: "missing"}, PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, none.Items)
	assert.Equal(t, 0, none.Pagination.TotalPages)
}
