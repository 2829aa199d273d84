// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"testing"

	"morphecms/internal/models"
)

func TestServiceStoreCRUD(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := NewServiceStore(db)

	t.Cleanup(func() { cleanSlugs(t, db, "services", "store-svc-a", "store-svc-b") })

	a, err := s.Create(ctx, &models.Service{
		Title: "A", Slug: "store-svc-a", Description: "d", Status: models.ServiceStatusActive, Order: 2,
	})
	if err != nil {
		t.Fatalf("Create a: %v", err)
	}
	if _, err := s.Create(ctx, &models.Service{
		Title: "B", Slug: "store-svc-b", Description: "d", Status: models.ServiceStatusInactive, Order: 1,
	}); err != nil {
		t.Fatalf("Create b: %v", err)
	}

	_, err = s.Create(ctx, &models.Service{Title: "A2", Slug: "store-svc-a", Description: "d", Status: models.ServiceStatusActive})
	if !errors.Is(err, ErrUniqueViolation) {
		t.Fatalf("duplicate slug: got %v", err)
	}

	active, _, err := s.List(ctx, ServiceQuery{Status: models.ServiceStatusActive, Page: Page{Limit: 1000}})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, svc := range active {
		if svc.Status != models.ServiceStatusActive {
			t.Errorf("inactive service %q in active listing", svc.Slug)
		}
	}

	all, _, err := s.List(ctx, ServiceQuery{Page: Page{Limit: 1000}})
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Order > all[i].Order {
			t.Fatalf("not ordered by sort order: %d before %d", all[i-1].Order, all[i].Order)
		}
	}

	a.Order = 7
	updated, err := s.Update(ctx, a)
	if err != nil || updated == nil || updated.Order != 7 {
		t.Fatalf("Update: %+v %v", updated, err)
	}

	ok, err := s.Delete(ctx, a.ID)
	if err != nil || !ok {
		t.Fatalf("Delete: %v %v", ok, err)
	}
	gone, err := s.FindByID(ctx, a.ID)
	if err != nil || gone != nil {
		t.Errorf("FindByID after delete: %v %v", gone, err)
	}
}
