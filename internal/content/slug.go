// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"morphecms/internal/slug"
	"morphecms/internal/store"
)

// slugOwner reports which row of one entity kind holds a slug.
type slugOwner interface {
	SlugOwner(ctx context.Context, slug string) (uuid.UUID, bool, error)
}

// deriveSlug turns a title into a slug and rejects titles with nothing
// usable in them.
func deriveSlug(field, title string) (string, error) {
	s := slug.Generate(title)
	if s == "" {
		return "", invalid(field, "must contain at least one letter or digit")
	}
	return s, nil
}

// claimSlug fails with a DuplicateSlugError when a row other than self
// already holds candidate. The check is advisory: the unique constraint is
// the real guard and writeError translates its violation the same way.
func claimSlug(ctx context.Context, repo slugOwner, entity, candidate string, self uuid.UUID) error {
	owner, ok, err := repo.SlugOwner(ctx, candidate)
	if err != nil {
		return fmt.Errorf("check %s slug: %w", entity, err)
	}
	if ok && owner != self {
		return &DuplicateSlugError{Entity: entity, Slug: candidate}
	}
	return nil
}

// writeError maps store write failures onto the content taxonomy. A unique
// violation is a slug collision that slipped past claimSlug.
func writeError(op, entity, candidate string, err error) error {
	switch {
	case errors.Is(err, store.ErrUniqueViolation):
		return &DuplicateSlugError{Entity: entity, Slug: candidate}
	case errors.Is(err, store.ErrForeignKeyViolation):
		return invalid("", "%s references an entity that does not exist", entity)
	}
	return fmt.Errorf("%s %s: %w", op, entity, err)
}
