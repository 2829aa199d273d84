// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"morphecms/internal/store"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "title is required", (&ValidationError{Field: "title", Message: "is required"}).Error())
	assert.Equal(t, "bad input", (&ValidationError{Message: "bad input"}).Error())
	assert.Equal(t, `post with slug "hello-world" already exists`, (&DuplicateSlugError{Entity: "post", Slug: "hello-world"}).Error())
	assert.Equal(t, "cannot delete tag: referenced by 3 post(s)", (&ReferencedError{Entity: "tag", Count: 3}).Error())
}

func TestReferencedErrorIs(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &ReferencedError{Entity: "category", Count: 1})
	assert.ErrorIs(t, err, ErrReferenced)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestWriteError(t *testing.T) {
	unique := fmt.Errorf("create post: %w", store.ErrUniqueViolation)
	var dup *DuplicateSlugError
	if assert.ErrorAs(t, writeError("create", "post", "x", unique), &dup) {
		assert.Equal(t, "x", dup.Slug)
	}

	fk := fmt.Errorf("link: %w", store.ErrForeignKeyViolation)
	var verr *ValidationError
	assert.ErrorAs(t, writeError("create", "post", "x", fk), &verr)

	boom := errors.New("connection reset")
	got := writeError("update", "career", "x", boom)
	assert.ErrorIs(t, got, boom)
	assert.Equal(t, "update career: connection reset", got.Error())
}
