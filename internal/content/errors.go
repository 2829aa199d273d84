// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content is the content entity manager. It owns slug derivation
// and uniqueness, publish-state stamping, reference checks on taxonomy
// deletes and the pagination arithmetic for posts, categories, tags,
// services and careers. Persistence is reached through the repository
// interfaces declared in repository.go.
package content

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the requested entity does not exist or
	// is not visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrReferenced is matched by every *ReferencedError.
	ErrReferenced = errors.New("entity is referenced")

	// ErrUnauthenticated is returned when a mutating operation runs
	// without a principal.
	ErrUnauthenticated = errors.New("authentication required")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// DuplicateSlugError reports that another entity of the same kind already
// holds Slug.
type DuplicateSlugError struct {
	Entity string
	Slug   string
}

func (e *DuplicateSlugError) Error() string {
	return fmt.Sprintf("%s with slug %q already exists", e.Entity, e.Slug)
}

// ReferencedError reports a delete refused because posts still reference
// the entity.
type ReferencedError struct {
	Entity string
	Count  int
}

func (e *ReferencedError) Error() string {
	return fmt.Sprintf("cannot delete %s: referenced by %d post(s)", e.Entity, e.Count)
}

// Is makes errors.Is(err, ErrReferenced) true.
func (e *ReferencedError) Is(target error) bool {
	return target == ErrReferenced
}

// notFound wraps ErrNotFound with the entity kind.
func notFound(entity string) error {
	return fmt.Errorf("%s %w", entity, ErrNotFound)
}
