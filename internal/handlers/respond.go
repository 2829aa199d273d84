// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the JSON HTTP handlers of the morphecms API.
// Handlers are grouped by audience (auth, admin, public) and receive their
// dependencies through the handler struct.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"morphecms/internal/auth"
	"morphecms/internal/content"
)

// Error kinds reported in the "error" field of failed responses.
const (
	kindValidation      = "VALIDATION_ERROR"
	kindDuplicateSlug   = "DUPLICATE_SLUG"
	kindReferenced      = "REFERENCED_ENTITY"
	kindNotFound        = "NOT_FOUND"
	kindUnauthenticated = "UNAUTHENTICATED"
	kindInternal        = "INTERNAL"
)

// envelope is the body of every successful response.
type envelope struct {
	Success    bool                `json:"success"`
	Data       any                 `json:"data,omitempty"`
	Pagination *content.Pagination `json:"pagination,omitempty"`
	Message    string              `json:"message,omitempty"`
}

// errorEnvelope is the body of every failed response.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

func respond(w http.ResponseWriter, r *http.Request, status int, data any) {
	render.Status(r, status)
	render.JSON(w, r, envelope{Success: true, Data: data})
}

func respondMessage(w http.ResponseWriter, r *http.Request, message string) {
	render.JSON(w, r, envelope{Success: true, Message: message})
}

func pageEnvelope[T any](p content.Page[T]) envelope {
	return envelope{Success: true, Data: p.Items, Pagination: &p.Pagination}
}

func respondPage[T any](w http.ResponseWriter, r *http.Request, p content.Page[T]) {
	render.JSON(w, r, pageEnvelope(p))
}

// errorResponder maps errors to HTTP responses. In development the text of
// unexpected errors is included in the body.
type errorResponder struct {
	dev bool
}

func (e errorResponder) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, body := e.classify(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	render.Status(r, status)
	render.JSON(w, r, body)
}

func (e errorResponder) classify(err error) (int, errorEnvelope) {
	var (
		verr *content.ValidationError
		derr *content.DuplicateSlugError
		rerr *content.ReferencedError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, errorEnvelope{Error: kindValidation, Message: verr.Error(), Field: verr.Field}
	case errors.As(err, &derr):
		return http.StatusBadRequest, errorEnvelope{Error: kindDuplicateSlug, Message: derr.Error(), Field: "slug"}
	case errors.As(err, &rerr):
		return http.StatusBadRequest, errorEnvelope{Error: kindReferenced, Message: rerr.Error()}
	case errors.Is(err, content.ErrNotFound):
		return http.StatusNotFound, errorEnvelope{Error: kindNotFound, Message: err.Error()}
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorEnvelope{Error: kindUnauthenticated, Message: "Invalid email or password"}
	case errors.Is(err, content.ErrUnauthenticated):
		return http.StatusUnauthorized, errorEnvelope{Error: kindUnauthenticated, Message: "Authentication required"}
	}
	body := errorEnvelope{Error: kindInternal, Message: "Internal server error"}
	if e.dev {
		body.Detail = err.Error()
	}
	return http.StatusInternalServerError, body
}

// decode reads a JSON request body into dst. Malformed bodies are
// validation errors.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, content.MaxBodyBytes)
	if err := render.DecodeJSON(r.Body, dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return &content.ValidationError{Field: "body", Message: "request body too large"}
		}
		return &content.ValidationError{Field: "body", Message: "malformed JSON body"}
	}
	return nil
}

// pathID parses the {id} URL parameter. A malformed id cannot name an
// existing entity, so it reports not found for entity.
func pathID(r *http.Request, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, &notFoundError{entity: entity}
	}
	return id, nil
}

type notFoundError struct{ entity string }

func (e *notFoundError) Error() string { return e.entity + " not found" }
func (e *notFoundError) Unwrap() error { return content.ErrNotFound }

// pageRequest parses the page and limit query parameters.
func pageRequest(r *http.Request) (content.PageRequest, error) {
	q := r.URL.Query()
	return content.ParsePageRequest(q.Get("page"), q.Get("limit"))
}

// NotFound answers unknown routes with the JSON error envelope.
func NotFound(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, errorEnvelope{Error: kindNotFound, Message: "Route not found"})
}
