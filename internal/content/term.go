// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"morphecms/internal/models"
	"morphecms/internal/slug"
	"morphecms/internal/store"
)

// CreateTermInput is the body of a category or tag create. When Slug is
// empty it is derived from Name.
type CreateTermInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Slug        string  `json:"slug" validate:"max=120"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
}

// UpdateTermInput is the body of a partial category or tag update. Renaming
// keeps the current slug; only an explicit Slug changes it.
type UpdateTermInput struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=100"`
	Slug        *string `json:"slug" validate:"omitnil,min=1,max=120"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
}

// TermManager runs category or tag operations, depending on its repository.
type TermManager struct {
	terms    TermRepository
	entity   string
	validate *inputValidator
}

// NewTermManager creates a TermManager over one taxonomy.
func NewTermManager(terms TermRepository) *TermManager {
	return &TermManager{
		terms:    terms,
		entity:   string(terms.Kind()),
		validate: newInputValidator(),
	}
}

// Kind reports the taxonomy managed.
func (m *TermManager) Kind() models.TermKind {
	return m.terms.Kind()
}

// List returns terms ordered by name with their total post counts.
func (m *TermManager) List(ctx context.Context, req PageRequest) (Page[models.Term], error) {
	return m.list(ctx, req, false)
}

// ListPublic returns terms ordered by name, counting only visible posts.
func (m *TermManager) ListPublic(ctx context.Context, req PageRequest) (Page[models.Term], error) {
	return m.list(ctx, req, true)
}

func (m *TermManager) list(ctx context.Context, req PageRequest, public bool) (Page[models.Term], error) {
	items, total, err := m.terms.List(ctx, store.TermQuery{PublishedCounts: public, Page: req.window()})
	if err != nil {
		return Page[models.Term]{}, fmt.Errorf("list %s: %w", m.entity, err)
	}
	return newPage(req, items, total), nil
}

// Get returns a term with summaries of the posts filed under it.
func (m *TermManager) Get(ctx context.Context, id uuid.UUID) (*models.Term, error) {
	t, err := m.terms.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", m.entity, err)
	}
	if t == nil {
		return nil, notFound(m.entity)
	}
	return t, nil
}

// GetBySlug returns a term by slug.
func (m *TermManager) GetBySlug(ctx context.Context, s string) (*models.Term, error) {
	t, err := m.terms.FindBySlug(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("get %s by slug: %w", m.entity, err)
	}
	if t == nil {
		return nil, notFound(m.entity)
	}
	return t, nil
}

// Create stores a new term.
func (m *TermManager) Create(ctx context.Context, in CreateTermInput) (*models.Term, error) {
	trim(&in.Name, &in.Slug, in.Description)
	if err := m.validate.check(in); err != nil {
		return nil, err
	}

	candidate := in.Slug
	if candidate == "" {
		var err error
		if candidate, err = deriveSlug("name", in.Name); err != nil {
			return nil, err
		}
	} else if !slug.Valid(candidate) {
		return nil, invalid("slug", "may only contain lowercase letters, digits and single hyphens")
	}

	if err := claimSlug(ctx, m.terms, m.entity, candidate, uuid.Nil); err != nil {
		return nil, err
	}

	created, err := m.terms.Create(ctx, &models.Term{
		Name:        in.Name,
		Slug:        candidate,
		Description: in.Description,
	})
	if err != nil {
		return nil, writeError("create", m.entity, candidate, err)
	}

	slog.Info(m.entity+" created", "id", created.ID, "slug", created.Slug)
	return created, nil
}

// Update applies a partial update.
func (m *TermManager) Update(ctx context.Context, id uuid.UUID, in UpdateTermInput) (*models.Term, error) {
	trim(in.Name, in.Slug, in.Description)
	if err := m.validate.check(in); err != nil {
		return nil, err
	}

	t, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Slug != nil && *in.Slug != t.Slug {
		if !slug.Valid(*in.Slug) {
			return nil, invalid("slug", "may only contain lowercase letters, digits and single hyphens")
		}
		if err := claimSlug(ctx, m.terms, m.entity, *in.Slug, t.ID); err != nil {
			return nil, err
		}
		t.Slug = *in.Slug
	}
	if in.Name != nil {
		t.Name = *in.Name
	}
	if in.Description != nil {
		t.Description = in.Description
	}

	updated, err := m.terms.Update(ctx, t)
	if err != nil {
		return nil, writeError("update", m.entity, t.Slug, err)
	}
	if updated == nil {
		return nil, notFound(m.entity)
	}

	slog.Info(m.entity+" updated", "id", updated.ID, "slug", updated.Slug)
	return updated, nil
}

// Delete removes a term that no post references. A referenced term is left
// untouched and a *ReferencedError is returned.
func (m *TermManager) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := m.terms.CountPosts(ctx, id)
	if err != nil {
		return fmt.Errorf("delete %s: %w", m.entity, err)
	}
	if n > 0 {
		return &ReferencedError{Entity: m.entity, Count: n}
	}

	ok, err := m.terms.Delete(ctx, id)
	if errors.Is(err, store.ErrForeignKeyViolation) {
		// A post linked the term after the count.
		if n, err = m.terms.CountPosts(ctx, id); err != nil || n < 1 {
			n = 1
		}
		return &ReferencedError{Entity: m.entity, Count: n}
	}
	if err != nil {
		return fmt.Errorf("delete %s: %w", m.entity, err)
	}
	if !ok {
		return notFound(m.entity)
	}

	slog.Info(m.entity+" deleted", "id", id)
	return nil
}
