// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"morphecms/internal/content"
	"morphecms/internal/models"
)

// ListServices lists services by display order. Accepts ?status=.
func (a *Admin) ListServices(w http.ResponseWriter, r *http.Request) {
	req, err := pageRequest(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	filter := content.ServiceFilter{Status: models.ServiceStatus(r.URL.Query().Get("status"))}
	page, err := a.Services.List(r.Context(), filter, req)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respondPage(w, r, page)
}

// GetService returns a service by id.
func (a *Admin) GetService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "service")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	svc, err := a.Services.Get(r.Context(), id)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, svc)
}

// CreateService creates a service.
func (a *Admin) CreateService(w http.ResponseWriter, r *http.Request) {
	var in content.CreateServiceInput
	if err := decode(w, r, &in); err != nil {
		a.fail(w, r, err)
		return
	}
	svc, err := a.Services.Create(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.changed(r, "service", "created")
	respond(w, r, http.StatusCreated, svc)
}

// UpdateService applies a partial update to a service.
func (a *Admin) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "service")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	var in content.UpdateServiceInput
	if err := decode(w, r, &in); err != nil {
		a.fail(w, r, err)
		return
	}
	svc, err := a.Services.Update(r.Context(), id, in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.changed(r, "service", "updated")
	respond(w, r, http.StatusOK, svc)
}

// DeleteService removes a service.
func (a *Admin) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "service")
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.Services.Delete(r.Context(), id); err != nil {
		a.fail(w, r, err)
		return
	}
	a.changed(r, "service", "deleted")
	respondMessage(w, r, "Service deleted successfully")
}
