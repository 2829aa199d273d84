// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"morphecms/internal/content/contenttest"
	"morphecms/internal/models"
)

// fixedClock returns a clock that reads t until advanced.
type fixedClock struct{ t time.Time }

func (c *fixedClock) now() time.Time           { return c.t }
func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock() *fixedClock {
	return &fixedClock{t: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

// fixture wires every manager to one in-memory store sharing a clock.
type fixture struct {
	mem      *contenttest.Store
	clock    *fixedClock
	posts    *PostManager
	cats     *TermManager
	tags     *TermManager
	services *ServiceManager
	careers  *CareerManager
	author   models.Principal
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mem := contenttest.New()
	clock := newClock()
	mem.SetClock(clock.now)

	u, err := mem.Users().Create(context.Background(), "author@example.com", "secret", "Ada", models.RoleEditor)
	require.NoError(t, err)

	f := &fixture{
		mem:      mem,
		clock:    clock,
		posts:    NewPostManager(mem.Posts(), mem.Categories(), mem.Tags()),
		cats:     NewTermManager(mem.Categories()),
		tags:     NewTermManager(mem.Tags()),
		services: NewServiceManager(mem.Services()),
		careers:  NewCareerManager(mem.Careers()),
		author:   models.Principal{UserID: u.ID, Email: u.Email, Role: u.Role},
	}
	f.posts.now = clock.now
	f.services.now = clock.now
	f.careers.now = clock.now
	return f
}

func (f *fixture) createPost(t *testing.T, title string, status models.PostStatus) *models.Post {
	t.Helper()
	p, err := f.posts.Create(context.Background(), f.author, CreatePostInput{
		Title: title, Content: "body of " + title, Status: status,
	})
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T { return &v }

func randomID() uuid.UUID { return uuid.New() }
