// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"morphecms/internal/content"
	"morphecms/internal/models"
)

// ResponseCache stores encoded public responses.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte)
}

// Public serves the unauthenticated read endpoints. Only visible content is
// exposed: published posts, active services and open careers.
type Public struct {
	errorResponder
	Managers
	cache ResponseCache
}

// NewPublic creates the public handler group. cache may be nil.
func NewPublic(m Managers, cache ResponseCache, dev bool) *Public {
	return &Public{errorResponder: errorResponder{dev: dev}, Managers: m, cache: cache}
}

// serve answers from the cache when possible. On a miss it builds the
// response, caches it when it succeeded and writes it.
func (p *Public) serve(w http.ResponseWriter, r *http.Request, build func(ctx context.Context) (envelope, error)) {
	key := r.URL.RequestURI()
	if p.cache != nil {
		if body, ok := p.cache.Get(r.Context(), key); ok {
			writeCached(w, body, "HIT")
			return
		}
	}

	env, err := build(r.Context())
	if err != nil {
		p.fail(w, r, err)
		return
	}
	body, err := json.Marshal(env)
	if err != nil {
		p.fail(w, r, err)
		return
	}
	if p.cache != nil {
		p.cache.Set(r.Context(), key, body)
	}
	writeCached(w, body, "MISS")
}

func writeCached(w http.ResponseWriter, body []byte, state string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Cache", state)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func dataEnvelope(data any) envelope { return envelope{Success: true, Data: data} }

// ListPosts lists published posts, newest publication first. Accepts
// ?category= and ?tag= slugs.
func (p *Public) ListPosts(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		p.fail(w, r, err)
		return
	}
	q := r.URL.Query()
	filter := content.PublicPostFilter{CategorySlug: q.Get("category"), TagSlug: q.Get("tag")}
	p.serve(w, r, func(ctx context.Context) (envelope, error) {
		page, err := p.Posts.ListPublished(ctx, filter, req)
		return pageEnvelope(page), err
	})
}

// GetPost returns a published post by slug.
func (p *Public) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	p.serve(w, r, func(ctx context.Context) (envelope, error) {
		post, err := p.Posts.GetPublishedBySlug(ctx, slug)
		return dataEnvelope(post), err
	})
}

func (p *Public) terms(kind models.TermKind) *content.TermManager {
	if kind == models.TermTag {
		return p.Tags
	}
	return p.Categories
}

// ListTerms lists categories or tags with counts of published posts.
func (p *Public) ListTerms(kind models.TermKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := pageRequest(r)
		if err != nil {
			p.fail(w, r, err)
			return
		}
		p.serve(w, r, func(ctx context.Context) (envelope, error) {
			page, err := p.terms(kind).ListPublic(ctx, req)
			return pageEnvelope(page), err
		})
	}
}

// GetTerm returns a category or tag by slug.
func (p *Public) GetTerm(kind models.TermKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		p.serve(w, r, func(ctx context.Context) (envelope, error) {
			term, err := p.terms(kind).GetBySlug(ctx, slug)
			return dataEnvelope(term), err
		})
	}
}

// ListServices lists active services in display order.
func (p *Public) ListServices(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		p.fail(w, r, err)
		return
	}
	p.serve(w, r, func(ctx context.Context) (envelope, error) {
		page, err := p.Services.ListVisible(ctx, req)
		return pageEnvelope(page), err
	})
}

// GetService returns an active service by slug.
func (p *Public) GetService(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	p.serve(w, r, func(ctx context.Context) (envelope, error) {
		svc, err := p.Services.GetVisibleBySlug(ctx, slug)
		return dataEnvelope(svc), err
	})
}

// ListCareers lists open careers. Accepts ?type= and ?location=.
func (p *Public) ListCareers(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		p.fail(w, r, err)
		return
	}
	filter := careerFilter(r)
	p.serve(w, r, func(ctx context.Context) (envelope, error) {
		page, err := p.Careers.ListVisible(ctx, filter, req)
		return pageEnvelope(page), err
	})
}

// GetCareer returns an open career by slug.
func (p *Public) GetCareer(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	p.serve(w, r, func(ctx context.Context) (envelope, error) {
		c, err := p.Careers.GetVisibleBySlug(ctx, slug)
		return dataEnvelope(c), err
	})
}
