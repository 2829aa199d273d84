// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up the HTTP routes and middleware chains of the
// morphecms API. Routes are grouped into auth, admin and public trees.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"morphecms/internal/handlers"
	"morphecms/internal/metrics"
	"morphecms/internal/middleware"
	"morphecms/internal/models"
)

// Deps holds everything the route tree needs.
type Deps struct {
	Auth   *handlers.Auth
	Admin  *handlers.Admin
	Public *handlers.Public
	Health http.Handler

	Tokens       middleware.TokenValidator
	LoginLimiter *middleware.RateLimiter
	CORSOrigins  []string
}

// New creates the configured chi router.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Cache"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/api/health", d.Health.ServeHTTP)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/auth", func(r chi.Router) {
		login := http.Handler(http.HandlerFunc(d.Auth.Login))
		if d.LoginLimiter != nil {
			login = d.LoginLimiter.Middleware(login)
		}
		r.Method(http.MethodPost, "/login", login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(middleware.Authenticate(d.Tokens))
			r.Get("/me", d.Auth.Me)
			r.With(middleware.RequireAdmin).Post("/register", d.Auth.Register)
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(middleware.Authenticate(d.Tokens))

		a := d.Admin
		crud(r, "/posts", a.ListPosts, a.GetPost, a.CreatePost, a.UpdatePost, a.DeletePost)
		crud(r, "/categories",
			a.ListTerms(models.TermCategory), a.GetTerm(models.TermCategory),
			a.CreateTerm(models.TermCategory), a.UpdateTerm(models.TermCategory),
			a.DeleteTerm(models.TermCategory))
		crud(r, "/tags",
			a.ListTerms(models.TermTag), a.GetTerm(models.TermTag),
			a.CreateTerm(models.TermTag), a.UpdateTerm(models.TermTag),
			a.DeleteTerm(models.TermTag))
		crud(r, "/services", a.ListServices, a.GetService, a.CreateService, a.UpdateService, a.DeleteService)
		crud(r, "/careers", a.ListCareers, a.GetCareer, a.CreateCareer, a.UpdateCareer, a.DeleteCareer)
	})

	r.Route("/api/public", func(r chi.Router) {
		p := d.Public
		r.Get("/posts", p.ListPosts)
		r.Get("/posts/{slug}", p.GetPost)
		r.Get("/categories", p.ListTerms(models.TermCategory))
		r.Get("/categories/{slug}", p.GetTerm(models.TermCategory))
		r.Get("/tags", p.ListTerms(models.TermTag))
		r.Get("/tags/{slug}", p.GetTerm(models.TermTag))
		r.Get("/services", p.ListServices)
		r.Get("/services/{slug}", p.GetService)
		r.Get("/careers", p.ListCareers)
		r.Get("/careers/{slug}", p.GetCareer)
	})

	r.NotFound(handlers.NotFound)

	return r
}

// crud mounts the five admin operations of one entity. Deleting requires
// the admin role; editors may read, create and update.
func crud(r chi.Router, pattern string, list, get, create, update, remove http.HandlerFunc) {
	r.Route(pattern, func(r chi.Router) {
		r.Get("/", list)
		r.Post("/", create)
		r.Get("/{id}", get)
		r.Put("/{id}", update)
		r.With(middleware.RequireAdmin).Delete("/{id}", remove)
	})
}
