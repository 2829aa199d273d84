// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"morphecms/internal/content"
	"morphecms/internal/models"
)

// Categories and tags share one set of handlers parameterized by kind.

func (a *Admin) terms(kind models.TermKind) *content.TermManager {
	if kind == models.TermTag {
		return a.Tags
	}
	return a.Categories
}

// ListTerms lists categories or tags with their post counts.
func (a *Admin) ListTerms(kind models.TermKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := pageRequest(r)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		page, err := a.terms(kind).List(r.Context(), req)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		respondPage(w, r, page)
	}
}

// GetTerm returns a term with the posts filed under it.
func (a *Admin) GetTerm(kind models.TermKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, string(kind))
		if err != nil {
			a.fail(w, r, err)
			return
		}
		term, err := a.terms(kind).Get(r.Context(), id)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		respond(w, r, http.StatusOK, term)
	}
}

// CreateTerm creates a category or tag.
func (a *Admin) CreateTerm(kind models.TermKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in content.CreateTermInput
		if err := decode(w, r, &in); err != nil {
			a.fail(w, r, err)
			return
		}
		term, err := a.terms(kind).Create(r.Context(), in)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		a.changed(r, string(kind), "created")
		respond(w, r, http.StatusCreated, term)
	}
}

// UpdateTerm applies a partial update to a category or tag.
func (a *Admin) UpdateTerm(kind models.TermKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, string(kind))
		if err != nil {
			a.fail(w, r, err)
			return
		}
		var in content.UpdateTermInput
		if err := decode(w, r, &in); err != nil {
			a.fail(w, r, err)
			return
		}
		term, err := a.terms(kind).Update(r.Context(), id, in)
		if err != nil {
			a.fail(w, r, err)
			return
		}
		a.changed(r, string(kind), "updated")
		respond(w, r, http.StatusOK, term)
	}
}

// DeleteTerm removes a category or tag no post references.
func (a *Admin) DeleteTerm(kind models.TermKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, string(kind))
		if err != nil {
			a.fail(w, r, err)
			return
		}
		if err := a.terms(kind).Delete(r.Context(), id); err != nil {
			a.fail(w, r, err)
			return
		}
		a.changed(r, string(kind), "deleted")
		if kind == models.TermTag {
			respondMessage(w, r, "Tag deleted successfully")
			return
		}
		respondMessage(w, r, "Category deleted successfully")
	}
}
