// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"morphecms/internal/models"
)

func TestUserStoreCreate(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	email := "test-create@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	user, err := s.Create(ctx, email, "testpass123", "Test User", models.RoleEditor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if user.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if user.Email != email {
		t.Errorf("email: got %q, want %q", user.Email, email)
	}
	if user.Name != "Test User" {
		t.Errorf("name: got %q, want %q", user.Name, "Test User")
	}
	if user.Role != models.RoleEditor {
		t.Errorf("role: got %q, want %q", user.Role, models.RoleEditor)
	}
	if user.PasswordHash == "" {
		t.Error("expected non-empty password hash")
	}
	if user.PasswordHash == "testpass123" {
		t.Error("password hash must not be plaintext")
	}
}

func TestUserStoreFindByEmail(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	email := "test-findbyemail@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	// Not found case.
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		t.Fatalf("FindByEmail (not found): %v", err)
	}
	if user != nil {
		t.Fatal("expected nil for non-existent user")
	}

	created, err := s.Create(ctx, email, "pass", "Finder", models.RoleAdmin)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	user, err = s.FindByEmail(ctx, email)
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if user == nil || user.ID != created.ID {
		t.Fatalf("FindByEmail: got %+v, want id %s", user, created.ID)
	}
	if user.Role != models.RoleAdmin {
		t.Errorf("role: got %q, want ADMIN", user.Role)
	}
}

func TestUserStoreFindByID(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	email := "test-findbyid@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	user, err := s.FindByID(ctx, uuid.New())
	if err != nil {
		t.Fatalf("FindByID (not found): %v", err)
	}
	if user != nil {
		t.Fatal("expected nil for random UUID")
	}

	created, err := s.Create(ctx, email, "pass", "By ID", models.RoleEditor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	user, err = s.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if user == nil || user.Email != email {
		t.Fatalf("FindByID: got %+v", user)
	}
}

func TestUserStoreCheckPassword(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	email := "test-checkpw@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	user, err := s.Create(context.Background(), email, "correct-horse", "PW", models.RoleEditor)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !s.CheckPassword(user, "correct-horse") {
		t.Error("expected correct password to match")
	}
	if s.CheckPassword(user, "wrong") {
		t.Error("expected wrong password to fail")
	}
}

func TestUserStoreCount(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	email := "test-count@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	before, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if _, err := s.Create(ctx, email, "pass", "Counter", models.RoleEditor); err != nil {
		t.Fatalf("Create: %v", err)
	}
	after, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if after != before+1 {
		t.Errorf("count: got %d, want %d", after, before+1)
	}
}

func TestUserStoreDuplicateEmail(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	ctx := context.Background()

	email := "test-dup@store-test.local"
	t.Cleanup(func() { cleanUsers(t, db, email) })

	if _, err := s.Create(ctx, email, "pass", "First", models.RoleEditor); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	_, err := s.Create(ctx, email, "pass", "Second", models.RoleEditor)
	if !errors.Is(err, ErrUniqueViolation) {
		t.Fatalf("duplicate email: got %v, want ErrUniqueViolation", err)
	}
}
