// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"morphecms/internal/auth"
	"morphecms/internal/content"
	"morphecms/internal/middleware"
	"morphecms/internal/models"
)

// AuthService is the account logic behind the auth endpoints.
type AuthService interface {
	Login(ctx context.Context, in auth.LoginInput) (string, *models.User, error)
	Register(ctx context.Context, in auth.RegisterInput) (*models.User, error)
	Me(ctx context.Context, p models.Principal) (*models.User, error)
}

// Auth handles login, registration and profile lookup.
type Auth struct {
	errorResponder
	service AuthService
}

// NewAuth creates the auth handler group.
func NewAuth(service AuthService, dev bool) *Auth {
	return &Auth{errorResponder: errorResponder{dev: dev}, service: service}
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login exchanges email and password for a bearer token.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var in auth.LoginInput
	if err := decode(w, r, &in); err != nil {
		a.fail(w, r, err)
		return
	}
	token, user, err := a.service.Login(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, loginResponse{Token: token, User: user})
}

// Register creates an account. Routed behind the admin role gate.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var in auth.RegisterInput
	if err := decode(w, r, &in); err != nil {
		a.fail(w, r, err)
		return
	}
	user, err := a.service.Register(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusCreated, user)
}

// Me returns the authenticated user.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		a.fail(w, r, content.ErrUnauthenticated)
		return
	}
	user, err := a.service.Me(r.Context(), p)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, user)
}
