// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"morphecms/internal/models"
	"morphecms/internal/store"
)

// CreatePostInput is the body of a post create.
type CreatePostInput struct {
	Title         string            `json:"title" validate:"required,max=300"`
	Content       string            `json:"content" validate:"required"`
	Excerpt       *string           `json:"excerpt" validate:"omitnil,max=1000"`
	FeaturedImage *string           `json:"featuredImage" validate:"omitnil,max=2048"`
	Status        models.PostStatus `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED"`
	CategoryIDs   []uuid.UUID       `json:"categoryIds"`
	TagIDs        []uuid.UUID       `json:"tagIds"`
}

// UpdatePostInput is the body of a partial post update. Nil fields are
// left unchanged; present link lists replace the current links.
type UpdatePostInput struct {
	Title         *string            `json:"title" validate:"omitnil,min=1,max=300"`
	Content       *string            `json:"content" validate:"omitnil,min=1"`
	Excerpt       *string            `json:"excerpt" validate:"omitnil,max=1000"`
	FeaturedImage *string            `json:"featuredImage" validate:"omitnil,max=2048"`
	Status        *models.PostStatus `json:"status" validate:"omitnil,oneof=DRAFT PUBLISHED"`
	CategoryIDs   []uuid.UUID        `json:"categoryIds"`
	TagIDs        []uuid.UUID        `json:"tagIds"`
}

// PostFilter narrows the admin post listing.
type PostFilter struct {
	Status models.PostStatus
}

// PublicPostFilter narrows the public post listing by taxonomy slug.
type PublicPostFilter struct {
	CategorySlug string
	TagSlug      string
}

// idCounter is the slice of TermRepository the post manager needs to check
// link targets.
type idCounter interface {
	CountExisting(ctx context.Context, ids []uuid.UUID) (int, error)
}

// PostManager runs post operations.
type PostManager struct {
	posts      PostRepository
	categories idCounter
	tags       idCounter
	validate   *inputValidator
	now        func() time.Time
}

// NewPostManager creates a PostManager. categories and tags are used to
// check the ids a post links to.
func NewPostManager(posts PostRepository, categories, tags idCounter) *PostManager {
	return &PostManager{
		posts:      posts,
		categories: categories,
		tags:       tags,
		validate:   newInputValidator(),
		now:        time.Now,
	}
}

// List returns a page of posts in any status, newest first.
func (m *PostManager) List(ctx context.Context, f PostFilter, req PageRequest) (Page[models.Post], error) {
	if f.Status != "" && !f.Status.Valid() {
		return Page[models.Post]{}, invalid("status", "must be one of DRAFT, PUBLISHED")
	}
	items, total, err := m.posts.List(ctx, store.PostQuery{Status: f.Status, Page: req.window()})
	if err != nil {
		return Page[models.Post]{}, fmt.Errorf("list posts: %w", err)
	}
	return newPage(req, items, total), nil
}

// ListPublished returns a page of visible posts, most recently published
// first. Author emails are not exposed.
func (m *PostManager) ListPublished(ctx context.Context, f PublicPostFilter, req PageRequest) (Page[models.Post], error) {
	items, total, err := m.posts.List(ctx, store.PostQuery{
		PublishedOnly: true,
		CategorySlug:  f.CategorySlug,
		TagSlug:       f.TagSlug,
		Page:          req.window(),
	})
	if err != nil {
		return Page[models.Post]{}, fmt.Errorf("list published posts: %w", err)
	}
	for i := range items {
		hideAuthorEmail(&items[i])
	}
	return newPage(req, items, total), nil
}

// Get returns a post by id in any status.
func (m *PostManager) Get(ctx context.Context, id uuid.UUID) (*models.Post, error) {
	p, err := m.posts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if p == nil {
		return nil, notFound("post")
	}
	return p, nil
}

// GetPublishedBySlug returns a post only while it is publicly visible.
func (m *PostManager) GetPublishedBySlug(ctx context.Context, slug string) (*models.Post, error) {
	p, err := m.posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get post by slug: %w", err)
	}
	if p == nil || !p.IsPublished() || p.PublishedAt == nil || p.PublishedAt.After(m.now()) {
		return nil, notFound("post")
	}
	hideAuthorEmail(p)
	return p, nil
}

// Create stores a new post authored by the principal. The slug comes from
// the title and the post starts as a draft unless told otherwise.
func (m *PostManager) Create(ctx context.Context, by models.Principal, in CreatePostInput) (*models.Post, error) {
	if by.UserID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	trim(&in.Title, &in.Content, in.Excerpt, in.FeaturedImage)
	if err := m.validate.check(in); err != nil {
		return nil, err
	}

	candidate, err := deriveSlug("title", in.Title)
	if err != nil {
		return nil, err
	}
	if err := claimSlug(ctx, m.posts, "post", candidate, uuid.Nil); err != nil {
		return nil, err
	}

	links, err := m.checkLinks(ctx, in.CategoryIDs, in.TagIDs)
	if err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.PostStatusDraft
	}

	p := &models.Post{
		Title:         in.Title,
		Slug:          candidate,
		Content:       in.Content,
		Excerpt:       in.Excerpt,
		FeaturedImage: in.FeaturedImage,
		Status:        status,
		AuthorID:      by.UserID,
		PublishedAt:   stampPublished("", status, models.PostStatusPublished, nil, m.now()),
	}

	created, err := m.posts.Create(ctx, p, links)
	if err != nil {
		return nil, writeError("create", "post", candidate, err)
	}

	slog.Info("post created", "id", created.ID, "slug", created.Slug, "status", created.Status, "author", by.UserID)
	return created, nil
}

// Update applies a partial update. A changed title regenerates the slug;
// the first move to PUBLISHED stamps publishedAt.
func (m *PostManager) Update(ctx context.Context, by models.Principal, id uuid.UUID, in UpdatePostInput) (*models.Post, error) {
	if by.UserID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	trim(in.Title, in.Content, in.Excerpt, in.FeaturedImage)
	if err := m.validate.check(in); err != nil {
		return nil, err
	}

	p, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil && *in.Title != p.Title {
		candidate, err := deriveSlug("title", *in.Title)
		if err != nil {
			return nil, err
		}
		if err := claimSlug(ctx, m.posts, "post", candidate, p.ID); err != nil {
			return nil, err
		}
		p.Title = *in.Title
		p.Slug = candidate
	}
	if in.Content != nil {
		p.Content = *in.Content
	}
	if in.Excerpt != nil {
		p.Excerpt = in.Excerpt
	}
	if in.FeaturedImage != nil {
		p.FeaturedImage = in.FeaturedImage
	}
	if in.Status != nil {
		before := p.PublishedAt
		p.PublishedAt = stampPublished(p.Status, *in.Status, models.PostStatusPublished, p.PublishedAt, m.now())
		p.Status = *in.Status
		if before == nil && p.PublishedAt != nil {
			slog.Info("post published", "id", p.ID, "slug", p.Slug)
		}
	}

	links, err := m.checkLinks(ctx, in.CategoryIDs, in.TagIDs)
	if err != nil {
		return nil, err
	}

	updated, err := m.posts.Update(ctx, p, links)
	if err != nil {
		return nil, writeError("update", "post", p.Slug, err)
	}
	if updated == nil {
		return nil, notFound("post")
	}

	slog.Info("post updated", "id", updated.ID, "slug", updated.Slug, "by", by.UserID)
	return updated, nil
}

// Delete removes a post and its links.
func (m *PostManager) Delete(ctx context.Context, by models.Principal, id uuid.UUID) error {
	if by.UserID == uuid.Nil {
		return ErrUnauthenticated
	}
	ok, err := m.posts.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if !ok {
		return notFound("post")
	}
	slog.Info("post deleted", "id", id, "by", by.UserID)
	return nil
}

// checkLinks deduplicates the requested link ids and verifies they exist.
// Nil lists stay nil so the store leaves those links alone.
func (m *PostManager) checkLinks(ctx context.Context, categoryIDs, tagIDs []uuid.UUID) (store.PostLinks, error) {
	var links store.PostLinks
	var err error
	if links.CategoryIDs, err = checkIDs(ctx, m.categories, "categoryIds", "category", categoryIDs); err != nil {
		return store.PostLinks{}, err
	}
	if links.TagIDs, err = checkIDs(ctx, m.tags, "tagIds", "tag", tagIDs); err != nil {
		return store.PostLinks{}, err
	}
	return links, nil
}

func checkIDs(ctx context.Context, repo idCounter, field, kind string, ids []uuid.UUID) ([]uuid.UUID, error) {
	if ids == nil {
		return nil, nil
	}
	seen := make(map[uuid.UUID]bool, len(ids))
	unique := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			return nil, invalid(field, "must not contain an empty id")
		}
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return unique, nil
	}

	n, err := repo.CountExisting(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("check %s ids: %w", kind, err)
	}
	if n != len(unique) {
		return nil, invalid(field, "contains an unknown %s", kind)
	}
	return unique, nil
}

func hideAuthorEmail(p *models.Post) {
	if p.Author != nil {
		a := *p.Author
		a.Email = ""
		p.Author = &a
	}
}
