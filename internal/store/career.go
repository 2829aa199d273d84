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

// CareerStore manages job openings.
type CareerStore struct {
	db *sql.DB
}

// NewCareerStore creates a new CareerStore.
func NewCareerStore(db *sql.DB) *CareerStore {
	return &CareerStore{db: db}
}

// CareerQuery filters a career listing. Location is a case-insensitive
// substring match.
type CareerQuery struct {
	Status   models.CareerStatus
	Type     models.CareerType
	Location string
	Page     Page
}

const careerColumns = `id, title, slug, description, location, type, department, salary,
	status, published_at, created_at, updated_at`

func scanCareer(row scanner) (models.Career, error) {
	var c models.Career
	err := row.Scan(
		&c.ID, &c.Title, &c.Slug, &c.Description, &c.Location, &c.Type, &c.Department, &c.Salary,
		&c.Status, &c.PublishedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// List returns careers matching q, newest first.
func (s *CareerStore) List(ctx context.Context, q CareerQuery) ([]models.Career, int, error) {
	var f filter
	if q.Status != "" {
		f.add("status = $%d", q.Status)
	}
	if q.Type != "" {
		f.add("type = $%d", q.Type)
	}
	if q.Location != "" {
		f.add("location ILIKE '%%' || $%d || '%%'", q.Location)
	}

	items, total, err := queryPage(ctx, s.db, pageQuery{
		rows:  `SELECT ` + careerColumns + ` FROM careers` + f.where() + ` ORDER BY created_at DESC`,
		count: `SELECT COUNT(*) FROM careers` + f.where(),
		args:  f.args,
		page:  q.Page,
	}, scanCareer)
	if err != nil {
		return nil, 0, fmt.Errorf("list careers: %w", err)
	}
	return items, total, nil
}

// FindByID retrieves a career by ID. Returns nil if not found.
func (s *CareerStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Career, error) {
	return s.findOne(ctx, "id = $1", id)
}

// FindBySlug retrieves a career by slug regardless of status. Returns nil if
// not found.
func (s *CareerStore) FindBySlug(ctx context.Context, slug string) (*models.Career, error) {
	return s.findOne(ctx, "slug = $1", slug)
}

func (s *CareerStore) findOne(ctx context.Context, cond string, arg any) (*models.Career, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+careerColumns+` FROM careers WHERE `+cond, arg)
	c, err := scanCareer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find career: %w", err)
	}
	return &c, nil
}

// SlugOwner returns the id of the career holding slug, if any.
func (s *CareerStore) SlugOwner(ctx context.Context, slug string) (uuid.UUID, bool, error) {
	return slugOwner(ctx, s.db, "careers", slug)
}

// Create inserts a new career and returns it.
func (s *CareerStore) Create(ctx context.Context, c *models.Career) (*models.Career, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO careers (title, slug, description, location, type, department, salary, status, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+careerColumns,
		c.Title, c.Slug, c.Description, c.Location, c.Type, c.Department, c.Salary, c.Status, c.PublishedAt,
	)
	created, err := scanCareer(row)
	if err != nil {
		return nil, fmt.Errorf("create career: %w", classify(err))
	}
	return &created, nil
}

// Update modifies an existing career. Returns nil if the row is gone.
func (s *CareerStore) Update(ctx context.Context, c *models.Career) (*models.Career, error) {
	row := s.db.QueryRowContext(ctx, `
		UPDATE careers SET
			title = $1, slug = $2, description = $3, location = $4, type = $5,
			department = $6, salary = $7, status = $8, published_at = $9, updated_at = NOW()
		WHERE id = $10
		RETURNING `+careerColumns,
		c.Title, c.Slug, c.Description, c.Location, c.Type,
		c.Department, c.Salary, c.Status, c.PublishedAt, c.ID,
	)
	updated, err := scanCareer(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update career: %w", classify(err))
	}
	return &updated, nil
}

// Delete removes a career. Returns false if no row was deleted.
func (s *CareerStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM careers WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete career: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete career: %w", err)
	}
	return n > 0, nil
}
