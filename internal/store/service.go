// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"morphecms/internal/models"
)

// ServiceStore manages the services shown on the marketing site.
type ServiceStore struct {
	db *sql.DB
}

// NewServiceStore creates a new ServiceStore.
func NewServiceStore(db *sql.DB) *ServiceStore {
	return &ServiceStore{db: db}
}

// ServiceQuery filters a service listing.
type ServiceQuery struct {
	Status models.ServiceStatus
	Page   Page
}

const serviceColumns = `id, title, slug, description, icon, image, status, sort_order,
	published_at, created_at, updated_at`

func scanService(row scanner) (models.Service, error) {
	var s models.Service
	err := row.Scan(
		&s.ID, &s.Title, &s.Slug, &s.Description, &s.Icon, &s.Image, &s.Status, &s.Order,
		&s.PublishedAt, &s.CreatedAt, &s.UpdatedAt,
	)
	return s, err
}

// List returns services ordered by their display order.
func (s *ServiceStore) List(ctx context.Context, q ServiceQuery) ([]models.Service, int, error) {
	var f filter
	if q.Status != "" {
		f.add("status = $%d", q.Status)
	}

	items, total, err := queryPage(ctx, s.db, pageQuery{
		rows:  `SELECT ` + serviceColumns + ` FROM services` + f.where() + ` ORDER BY sort_order ASC, title ASC`,
		count: `SELECT COUNT(*) FROM services` + f.where(),
		args:  f.args,
		page:  q.Page,
	}, scanService)
	if err != nil {
		return nil, 0, fmt.Errorf("list services: %w", err)
	}
	return items, total, nil
}

// FindByID retrieves a service by ID. Returns nil if not found.
func (s *ServiceStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error) {
	return s.findOne(ctx, "id = $1", id)
}

// FindBySlug retrieves a service by slug regardless of status. Returns nil
// if not found.
func (s *ServiceStore) FindBySlug(ctx context.Context, slug string) (*models.Service, error) {
	return s.findOne(ctx, "slug = $1", slug)
}

func (s *ServiceStore) findOne(ctx context.Context, cond string, arg any) (*models.Service, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+serviceColumns+` FROM services WHERE `+cond, arg)
	svc, err := scanService(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find service: %w", err)
	}
	return &svc, nil
}

// SlugOwner returns the id of the service holding slug, if any.
func (s *ServiceStore) SlugOwner(ctx context.Context, slug string) (uuid.UUID, bool, error) {
	return slugOwner(ctx, s.db, "services", slug)
}

// Create inserts a new service and returns it.
func (s *ServiceStore) Create(ctx context.Context, svc *models.Service) (*models.Service, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO services (title, slug, description, icon, image, status, sort_order, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+serviceColumns,
		svc.Title, svc.Slug, svc.Description, svc.Icon, svc.Image, svc.Status, svc.Order, svc.PublishedAt,
	)
	created, err := scanService(row)
	if err != nil {
		return nil, fmt.Errorf("create service: %w", classify(err))
	}
	return &created, nil
}

// Update modifies an existing service. Returns nil if the row is gone.
func (s *ServiceStore) Update(ctx context.Context, svc *models.Service) (*models.Service, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE services SET
			title = $1, slug = $2, description = $3, icon = $4, image = $5,
			status = $6, sort_order = $7, published_at = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING `+serviceColumns,
		svc.Title, svc.Slug, svc.Description, svc.Icon, svc.Image,
		svc.Status, svc.Order, svc.PublishedAt, svc.ID,
	)
	updated, err := scanService(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update service: %w", classify(err))
	}
	return &updated, nil
}

// Delete removes a service. Returns false if no row was deleted.
func (s *ServiceStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete service: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete service: %w", err)
	}
	return n > 0, nil
}
