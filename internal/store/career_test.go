// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"testing"

	"morphecms/internal/models"
)

func TestCareerStoreFilters(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	s := NewCareerStore(db)

	t.Cleanup(func() { cleanSlugs(t, db, "careers", "store-job-remote", "store-job-office", "store-job-draft") })

	fixtures := []models.Career{
		{Title: "Remote", Slug: "store-job-remote", Location: "Remote, EU", Type: models.CareerTypeContract, Status: models.CareerStatusOpen},
		{Title: "Office", Slug: "store-job-office", Location: "Bucharest", Type: models.CareerTypeFullTime, Status: models.CareerStatusOpen},
		{Title: "Draft", Slug: "store-job-draft", Location: "Remote", Type: models.CareerTypeContract, Status: models.CareerStatusDraft},
	}
	for i := range fixtures {
		fixtures[i].Description = "d"
		if _, err := s.Create(ctx, &fixtures[i]); err != nil {
			t.Fatalf("Create %s: %v", fixtures[i].Slug, err)
		}
	}

	items, _, err := s.List(ctx, CareerQuery{
		Status:   models.CareerStatusOpen,
		Type:     models.CareerTypeContract,
		Location: "remote",
		Page:     Page{Limit: 1000},
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	var slugs []string
	for _, c := range items {
		if c.Slug == "store-job-remote" || c.Slug == "store-job-office" || c.Slug == "store-job-draft" {
			slugs = append(slugs, c.Slug)
		}
	}
	if len(slugs) != 1 || slugs[0] != "store-job-remote" {
		t.Errorf("filtered careers: got %v, want [store-job-remote]", slugs)
	}

	job, err := s.FindBySlug(ctx, "store-job-office")
	if err != nil || job == nil {
		t.Fatalf("FindBySlug: %v %v", job, err)
	}
	job.Status = models.CareerStatusClosed
	updated, err := s.Update(ctx, job)
	if err != nil || updated == nil || updated.Status != models.CareerStatusClosed {
		t.Fatalf("Update: %+v %v", updated, err)
	}
}
