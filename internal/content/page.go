// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"math"
	"strconv"
	"strings"

	"morphecms/internal/store"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// PageRequest selects a page of a listing. Zero values mean the defaults.
type PageRequest struct {
	Page  int
	Limit int
}

// ParsePageRequest reads the raw page and limit query values. Absent values
// take the defaults; anything that is not an integer of at least 1 is a
// ValidationError. Limits above MaxLimit are capped.
func ParsePageRequest(page, limit string) (PageRequest, error) {
	var req PageRequest
	var err error
	if req.Page, err = parsePositive("page", page, DefaultPage); err != nil {
		return PageRequest{}, err
	}
	if req.Limit, err = parsePositive("limit", limit, DefaultLimit); err != nil {
		return PageRequest{}, err
	}
	return req.normalize(), nil
}

func parsePositive(field, raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, invalid(field, "must be a positive integer")
	}
	return n, nil
}

func (r PageRequest) normalize() PageRequest {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.Limit < 1 {
		r.Limit = DefaultLimit
	}
	if r.Limit > MaxLimit {
		r.Limit = MaxLimit
	}
	// Keep (Page-1)*Limit within int. Such a page is past the end anyway.
	if r.Page-1 > math.MaxInt/r.Limit {
		r.Page = math.MaxInt/r.Limit + 1
	}
	return r
}

// Skip is the number of rows before the requested page.
func (r PageRequest) Skip() int {
	r = r.normalize()
	return (r.Page - 1) * r.Limit
}

func (r PageRequest) window() store.Page {
	r = r.normalize()
	return store.Page{Offset: r.Skip(), Limit: r.Limit}
}

// Pagination describes where a page sits in the full listing.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes the pagination block for a request that matched
// total rows.
func NewPagination(r PageRequest, total int) Pagination {
	r = r.normalize()
	return Pagination{
		Page:       r.Page,
		Limit:      r.Limit,
		Total:      total,
		TotalPages: (total + r.Limit - 1) / r.Limit,
	}
}

// Page is one page of a listing. A page past the end has no items but
// still reports accurate totals.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

func newPage[T any](r PageRequest, items []T, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Pagination: NewPagination(r, total)}
}
