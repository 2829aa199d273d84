// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"morphecms/internal/content"
	"morphecms/internal/metrics"
	"morphecms/internal/middleware"
	"morphecms/internal/models"
)

// Managers bundles the content managers shared by the admin and public
// handler groups.
type Managers struct {
	Posts      *content.PostManager
	Categories *content.TermManager
	Tags       *content.TermManager
	Services   *content.ServiceManager
	Careers    *content.CareerManager
}

// Invalidator drops cached public responses after a content change.
type Invalidator interface {
	InvalidateAll(ctx context.Context)
}

// Admin groups the authenticated CRUD handlers.
type Admin struct {
	errorResponder
	Managers
	cache Invalidator
}

// NewAdmin creates the admin handler group. cache may be nil when public
// caching is disabled.
func NewAdmin(m Managers, cache Invalidator, dev bool) *Admin {
	return &Admin{errorResponder: errorResponder{dev: dev}, Managers: m, cache: cache}
}

// changed records a successful mutation and invalidates the public cache.
func (a *Admin) changed(r *http.Request, entity, action string) {
	metrics.ContentEvents.WithLabelValues(entity, action).Inc()
	if a.cache != nil {
		a.cache.InvalidateAll(r.Context())
	}
	slog.Debug("content changed", "entity", entity, "action", action)
}

// principal returns the caller set by the authentication middleware, or
// the zero principal which the managers reject.
func principal(r *http.Request) models.Principal {
	p, _ := middleware.PrincipalFrom(r.Context())
	return p
}
