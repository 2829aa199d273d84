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

// CreateServiceInput is the body of a service create.
type CreateServiceInput struct {
	Title       string               `json:"title" validate:"required,max=200"`
	Description string               `json:"description" validate:"required"`
	Icon        *string              `json:"icon" validate:"omitnil,max=200"`
	Image       *string              `json:"image" validate:"omitnil,max=2048"`
	Status      models.ServiceStatus `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	Order       int                  `json:"order"`
}

// UpdateServiceInput is the body of a partial service update.
type UpdateServiceInput struct {
	Title       *string               `json:"title" validate:"omitnil,min=1,max=200"`
	Description *string               `json:"description" validate:"omitnil,min=1"`
	Icon        *string               `json:"icon" validate:"omitnil,max=200"`
	Image       *string               `json:"image" validate:"omitnil,max=2048"`
	Status      *models.ServiceStatus `json:"status" validate:"omitnil,oneof=ACTIVE INACTIVE"`
	Order       *int                  `json:"order"`
}

// ServiceFilter narrows the service listing.
type ServiceFilter struct {
	Status models.ServiceStatus
}

// ServiceManager runs service operations.
type ServiceManager struct {
	services ServiceRepository
	validate *inputValidator
	now      func() time.Time
}

// NewServiceManager creates a ServiceManager.
func NewServiceManager(services ServiceRepository) *ServiceManager {
	return &ServiceManager{services: services, validate: newInputValidator(), now: time.Now}
}

// List returns services in display order.
func (m *ServiceManager) List(ctx context.Context, f ServiceFilter, req PageRequest) (Page[models.Service], error) {
	if f.Status != "" && !f.Status.Valid() {
		return Page[models.Service]{}, invalid("status", "must be one of ACTIVE, INACTIVE")
	}
	items, total, err := m.services.List(ctx, store.ServiceQuery{Status: f.Status, Page: req.window()})
	if err != nil {
		return Page[models.Service]{}, fmt.Errorf("list services: %w", err)
	}
	return newPage(req, items, total), nil
}

// ListVisible returns active services in display order.
func (m *ServiceManager) ListVisible(ctx context.Context, req PageRequest) (Page[models.Service], error) {
	return m.List(ctx, ServiceFilter{Status: models.ServiceStatusActive}, req)
}

// Get returns a service by id in any status.
func (m *ServiceManager) Get(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	svc, err := m.services.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if svc == nil {
		return nil, notFound("service")
	}
	return svc, nil
}

// GetVisibleBySlug returns a service only while it is active.
func (m *ServiceManager) GetVisibleBySlug(ctx context.Context, slug string) (*models.Service, error) {
	svc, err := m.services.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get service by slug: %w", err)
	}
	if svc == nil || svc.Status != models.ServiceStatusActive {
		return nil, notFound("service")
	}
	return svc, nil
}

// Create stores a new service. Services start active.
func (m *ServiceManager) Create(ctx context.Context, in CreateServiceInput) (*models.Service, error) {
	trim(&in.Title, &in.Description, in.Icon, in.Image)
	if err := m.validate.check(in); err != nil {
		return nil, err
	}

	candidate, err := deriveSlug("title", in.Title)
	if err != nil {
		return nil, err
	}
	if err := claimSlug(ctx, m.services, "service", candidate, uuid.Nil); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = models.ServiceStatusActive
	}

	created, err := m.services.Create(ctx, &models.Service{
		Title:       in.Title,
		Slug:        candidate,
		Description: in.Description,
		Icon:        in.Icon,
		Image:       in.Image,
		Status:      status,
		Order:       in.Order,
		PublishedAt: stampPublished("", status, models.ServiceStatusActive, nil, m.now()),
	})
	if err != nil {
		return nil, writeError("create", "service", candidate, err)
	}

	slog.Info("service created", "id", created.ID, "slug", created.Slug, "status", created.Status)
	return created, nil
}

// Update applies a partial update. A changed title regenerates the slug.
func (m *ServiceManager) Update(ctx context.Context, id uuid.UUID, in UpdateServiceInput) (*models.Service, error) {
	trim(in.Title, in.Description, in.Icon, in.Image)
	if err := m.validate.check(in); err != nil {
		return nil, err
	}

	svc, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil && *in.Title != svc.Title {
		candidate, err := deriveSlug("title", *in.Title)
		if err != nil {
			return nil, err
		}
		if err := claimSlug(ctx, m.services, "service", candidate, svc.ID); err != nil {
			return nil, err
		}
		svc.Title = *in.Title
		svc.Slug = candidate
	}
	if in.Description != nil {
		svc.Description = *in.Description
	}
	if in.Icon != nil {
		svc.Icon = in.Icon
	}
	if in.Image != nil {
		svc.Image = in.Image
	}
	if in.Order != nil {
		svc.Order = *in.Order
	}
	if in.Status != nil {
		svc.PublishedAt = stampPublished(svc.Status, *in.Status, models.ServiceStatusActive, svc.PublishedAt, m.now())
		svc.Status = *in.Status
	}

	updated, err := m.services.Update(ctx, svc)
	if err != nil {
		return nil, writeError("update", "service", svc.Slug, err)
	}
	if updated == nil {
		return nil, notFound("service")
	}

	slog.Info("service updated", "id", updated.ID, "slug", updated.Slug)
	return updated, nil
}

// Delete removes a service.
func (m *ServiceManager) Delete(ctx context.Context, id uuid.UUID) error {
	ok, err := m.services.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if !ok {
		return notFound("service")
	}
	slog.Info("service deleted", "id", id)
	return nil
}
