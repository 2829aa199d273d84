// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"

	"github.com/google/uuid"

	"morphecms/internal/models"
	"morphecms/internal/store"
)

// PostRepository persists posts. *store.PostStore implements it.
type PostRepository interface {
	List(ctx context.Context, q store.PostQuery) ([]models.Post, int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Post, error)
	FindBySlug(ctx context.Context, slug string) (*models.Post, error)
	SlugOwner(ctx context.Context, slug string) (uuid.UUID, bool, error)
	Create(ctx context.Context, p *models.Post, links store.PostLinks) (*models.Post, error)
	Update(ctx context.Context, p *models.Post, links store.PostLinks) (*models.Post, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// TermRepository persists one taxonomy. *store.TermStore implements it.
type TermRepository interface {
	Kind() models.TermKind
	List(ctx context.Context, q store.TermQuery) ([]models.Term, int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Term, error)
	FindBySlug(ctx context.Context, slug string) (*models.Term, error)
	SlugOwner(ctx context.Context, slug string) (uuid.UUID, bool, error)
	CountExisting(ctx context.Context, ids []uuid.UUID) (int, error)
	CountPosts(ctx context.Context, id uuid.UUID) (int, error)
	Create(ctx context.Context, t *models.Term) (*models.Term, error)
	Update(ctx context.Context, t *models.Term) (*models.Term, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// ServiceRepository persists services. *store.ServiceStore implements it.
type ServiceRepository interface {
	List(ctx context.Context, q store.ServiceQuery) ([]models.Service, int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Service, error)
	FindBySlug(ctx context.Context, slug string) (*models.Service, error)
	SlugOwner(ctx context.Context, slug string) (uuid.UUID, bool, error)
	Create(ctx context.Context, s *models.Service) (*models.Service, error)
	Update(ctx context.Context, s *models.Service) (*models.Service, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// CareerRepository persists careers. *store.CareerStore implements it.
type CareerRepository interface {
	List(ctx context.Context, q store.CareerQuery) ([]models.Career, int, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Career, error)
	FindBySlug(ctx context.Context, slug string) (*models.Career, error)
	SlugOwner(ctx context.Context, slug string) (uuid.UUID, bool, error)
	Create(ctx context.Context, c *models.Career) (*models.Career, error)
	Update(ctx context.Context, c *models.Career) (*models.Career, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

var (
	_ PostRepository    = (*store.PostStore)(nil)
	_ TermRepository    = (*store.TermStore)(nil)
	_ ServiceRepository = (*store.ServiceStore)(nil)
	_ CareerRepository  = (*store.CareerStore)(nil)
)
