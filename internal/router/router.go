// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router wires all HTTP routes and middleware chains for the
// HackerThink API. Routes split into public reads, a rate-limited
// anonymous comment endpoint, an authenticated editorial group and an
// admin-only group.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"hackerthink/internal/handlers"
	"hackerthink/internal/middleware"
	"hackerthink/internal/session"
)

// New creates the configured chi router with all middleware and route
// groups wired up.
func New(sessionStore *session.Store, api *handlers.API, commentLimiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.LoadSession(sessionStore))

	// Health check, no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Auth
		r.Post("/auth/login", api.Login)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/auth/logout", api.Logout)
			r.Get("/auth/me", api.Me)
		})

		// Taxonomy
		r.Get("/taxonomy/categories", api.TaxonomyList)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/taxonomy/categories", api.TaxonomyCreate)
			r.Put("/taxonomy/categories/{id}", api.TaxonomyUpdate)
			r.Delete("/taxonomy/categories/{id}", api.TaxonomyDelete)
		})

		// Comments: anonymous create is rate limited, reads are public,
		// moderation is admin-only.
		r.With(commentLimiter.Middleware).Post("/comments", api.CommentCreate)
		r.Get("/comments", api.CommentList)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth, middleware.RequireAdmin)
			r.Get("/comments/pending", api.CommentPending)
			r.Post("/comments/{id}/approve", api.CommentApprove)
			r.Delete("/comments/{id}", api.CommentDelete)
		})

		// Guests
		r.Get("/guests", api.GuestList)
		r.Get("/guests/{id}", api.GuestGet)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/guests", api.GuestCreate)
			r.Put("/guests/{id}", api.GuestUpdate)
			r.Delete("/guests/{id}", api.GuestDelete)
		})

		// Commands, products, glossary
		r.Get("/commands", api.CommandList)
		r.Get("/products", api.ProductList)
		r.Get("/glossary", api.GlossaryList)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/commands", api.CommandCreate)
			r.Put("/commands/{id}", api.CommandUpdate)
			r.Delete("/commands/{id}", api.CommandDelete)
			r.Post("/products", api.ProductCreate)
			r.Put("/products/{id}", api.ProductUpdate)
			r.Delete("/products/{id}", api.ProductDelete)
			r.Post("/glossary", api.GlossaryCreate)
			r.Put("/glossary/{id}", api.GlossaryUpdate)
			r.Delete("/glossary/{id}", api.GlossaryDelete)
		})

		// Media
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/media", api.MediaList)
			r.Post("/media", api.MediaUpload)
			r.Post("/media/bulk-delete", api.MediaBulkDelete)
			r.Put("/media/{id}", api.MediaUpdate)
			r.Delete("/media/{id}", api.MediaDelete)
		})

		// SMTP providers — admin only.
		r.Route("/smtp-configs", func(r chi.Router) {
			r.Use(middleware.RequireAuth, middleware.RequireAdmin)
			r.Get("/", api.SMTPList)
			r.Post("/", api.SMTPCreate)
			r.Post("/{id}/default", api.SMTPSetDefault)
			r.Delete("/{id}", api.SMTPDelete)
		})

		// Lab progress — per-user, needs a session.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/lab-progress", api.LabProgressList)
			r.Get("/lab-exercises/{id}/progress", api.LabProgressGet)
			r.Put("/lab-exercises/{id}/progress", api.LabProgressSave)
		})

		// Content, one route set shared by every entity type. Registered
		// last so the static routes above win.
		r.Get("/{type}", api.ContentList)
		r.Get("/{type}/{slug}", api.ContentGet)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Post("/{type}", api.ContentCreate)
			r.Put("/{type}/{id}", api.ContentUpdate)
			r.Delete("/{type}/{id}", api.ContentDelete)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
