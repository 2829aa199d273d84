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

// CreateCareerInput is the body of a career create.
type CreateCareerInput struct {
	Title       string              `json:"title" validate:"required,max=200"`
	Description string              `json:"description" validate:"required"`
	Location    string              `json:"location" validate:"required,max=200"`
	Type        models.CareerType   `json:"type" validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	Department  *string             `json:"department" validate:"omitnil,max=200"`
	Salary      *string             `json:"salary" validate:"omitnil,max=200"`
	Status      models.CareerStatus `json:"status" validate:"omitempty,oneof=DRAFT OPEN CLOSED"`
}

// UpdateCareerInput is the body of a partial career update.
type UpdateCareerInput struct {
	Title       *string              `json:"title" validate:"omitnil,min=1,max=200"`
	Description *string              `json:"description" validate:"omitnil,min=1"`
	Location    *string              `json:"location" validate:"omitnil,min=1,max=200"`
	Type        *models.CareerType   `json:"type" validate:"omitnil,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	Department  *string              `json:"department" validate:"omitnil,max=200"`
	Salary      *string              `json:"salary" validate:"omitnil,max=200"`
	Status      *models.CareerStatus `json:"status" validate:"omitnil,oneof=DRAFT OPEN CLOSED"`
}

// CareerFilter narrows the career listing. Location matches any part of
// the career location, ignoring case.
type CareerFilter struct {
	Status   models.CareerStatus
	Type     models.CareerType
	Location string
}

// CareerManager runs career operations.
type CareerManager struct {
	careers  CareerRepository
	validate *inputValidator
	now      func() time.Time
}

// NewCareerManager creates a CareerManager.
func NewCareerManager(careers CareerRepository) *CareerManager {
	return &CareerManager{careers: careers, validate: newInputValidator(), now: time.Now}
}

// List returns careers matching f, newest first.
func (m *CareerManager) List(ctx context.Context, f CareerFilter, req PageRequest) (Page[models.Career], error) {
	if f.Status != "" && !f.Status.Valid() {
		return Page[models.Career]{}, invalid("status", "must be one of DRAFT, OPEN, CLOSED")
	}
	if f.Type != "" && !f.Type.Valid() {
		return Page[models.Career]{}, invalid("type", "must be one of FULL_TIME, PART_TIME, CONTRACT, INTERNSHIP")
	}
	items, total, err := m.careers.List(ctx, store.CareerQuery{
		Status:   f.Status,
		Type:     f.Type,
		Location: f.Location,
		Page:     req.window(),
	})
	if err != nil {
		return Page[models.Career]{}, fmt.Errorf("list careers: %w", err)
	}
	return newPage(req, items, total), nil
}

// ListVisible returns open careers matching the type and location of f.
// The status in f is ignored.
func (m *CareerManager) ListVisible(ctx context.Context, f CareerFilter, req PageRequest) (Page[models.Career], error) {
	f.Status = models.CareerStatusOpen
	return m.List(ctx, f, req)
}

// Get returns a career by id in any status.
func (m *CareerManager) Get(ctx context.Context, id uuid.UUID) (*models.Career, error) {
	c, err := m.careers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get career: %w", err)
	}
	if c == nil {
		return nil, notFound("career")
	}
	return c, nil
}

// GetVisibleBySlug returns a career only while it is open.
func (m *CareerManager) GetVisibleBySlug(ctx context.Context, slug string) (*models.Career, error) {
	c, err := m.careers.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get career by slug: %w", err)
	}
	if c == nil || c.Status != models.CareerStatusOpen {
		return nil, notFound("career")
	}
	return c, nil
}

// Create stores a new career. Careers start as full-time drafts unless told
// otherwise.
func (m *CareerManager) Create(ctx context.Context, in CreateCareerInput) (*models.Career, error) {
	trim(&in.Title, &in.Description, &in.Location, in.Department, in.Salary)
	if err := m.validate.check(in); err != nil {
		return nil, err
	}

	candidate, err := deriveSlug("title", in.Title)
	if err != nil {
		return nil, err
	}
	if err := claimSlug(ctx, m.careers, "career", candidate, uuid.Nil); err != nil {
		return nil, err
	}

	typ := in.Type
	if typ == "" {
		typ = models.CareerTypeFullTime
	}
	status := in.Status
	if status == "" {
		status = models.CareerStatusDraft
	}

	created, err := m.careers.Create(ctx, &models.Career{
		Title:       in.Title,
		Slug:        candidate,
		Description: in.Description,
		Location:    in.Location,
		Type:        typ,
		Department:  in.Department,
		Salary:      in.Salary,
		Status:      status,
		PublishedAt: stampPublished("", status, models.CareerStatusOpen, nil, m.now()),
	})
	if err != nil {
		return nil, writeError("create", "career", candidate, err)
	}

	slog.Info("career created", "id", created.ID, "slug", created.Slug, "status", created.Status)
	return created, nil
}

// Update applies a partial update. A changed title regenerates the slug;
// the first move to OPEN stamps publishedAt.
func (m *CareerManager) Update(ctx context.Context, id uuid.UUID, in UpdateCareerInput) (*models.Career, error) {
	trim(in.Title, in.Description, in.Location, in.Department, in.Salary)
	if err := m.validate.check(in); err != nil {
		return nil, err
	}

	c, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil && *in.Title != c.Title {
		candidate, err := deriveSlug("title", *in.Title)
		if err != nil {
			return nil, err
		}
		if err := claimSlug(ctx, m.careers, "career", candidate, c.ID); err != nil {
			return nil, err
		}
		c.Title = *in.Title
		c.Slug = candidate
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
	if in.Location != nil {
		c.Location = *in.Location
	}
	if in.Type != nil {
		c.Type = *in.Type
	}
	if in.Department != nil {
		c.Department = in.Department
	}
	if in.Salary != nil {
		c.Salary = in.Salary
	}
	if in.Status != nil {
		c.PublishedAt = stampPublished(c.Status, *in.Status, models.CareerStatusOpen, c.PublishedAt, m.now())
		c.Status = *in.Status
	}

	updated, err := m.careers.Update(ctx, c)
	if err != nil {
		return nil, writeError("update", "career", c.Slug, err)
	}
	if updated == nil {
		return nil, notFound("career")
	}

	slog.Info("career updated", "id", updated.ID, "slug", updated.Slug, "status", updated.Status)
	return updated, nil
}

// Delete removes a career.
func (m *CareerManager) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := m.careers.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete career: %w", err)
	}
	if !ok {
		return notFound("career")
	}
	slog.Info("career deleted", "id", id)
	return nil
}
