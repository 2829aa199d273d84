// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"morphecms/internal/content"
	"morphecms/internal/models"
)

// careerFilter reads ?status=, ?type= and ?location=.
func careerFilter(r *http.Request) content.CareerFilter {
	q := r.URL.Query()
	return content.CareerFilter{
		Status:   models.CareerStatus(q.Get("status")),
		Type:     models.CareerType(q.Get("type")),
		Location: q.Get("location"),
	}
}

// ListCareers lists careers of every status, newest first.
func (a *Admin) ListCareers(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	page, err := a.Careers.List(r.Context(), careerFilter(r), req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respondPage(w, r, page)
}

// GetCareer returns a career by id.
func (a *Admin) GetCareer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "career")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	c, err := a.Careers.Get(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, c)
}

// CreateCareer creates a career opening.
func (a *Admin) CreateCareer(w http.ResponseWriter, r *http.Request) {
	var in content.CreateCareerInput
	if err := decode(w, r, &in); err != nil {
		a.fail(w, r, err)
		return
	}
	c, err := a.Careers.Create(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.changed(r, "career", "created")
	respond(w, r, http.StatusCreated, c)
}

// UpdateCareer applies a partial update to a career.
func (a *Admin) UpdateCareer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "career")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var in content.UpdateCareerInput
	if err := decode(w, r, &in); err != nil {
		a.fail(w, r, err)
		return
	}
	c, err := a.Careers.Update(r.Context(), id, in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.changed(r, "career", "updated")
	respond(w, r, http.StatusOK, c)
}

// DeleteCareer removes a career.
func (a *Admin) DeleteCareer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "career")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.Careers.Delete(r.Context(), id); err != nil {
		a.fail(w, r, err)
		return
	}
	a.changed(r, "career", "deleted")
	respondMessage(w, r, "Career deleted successfully")
}
