// Package router sets up all HTTP routes and middleware chains for the
// catalog API server. It organizes routes into public and admin groups
// with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"greentree/internal/handlers"
	"greentree/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(trees *handlers.Trees, wishlist *handlers.Wishlist, requests *handlers.Requests, admin *handlers.Admin) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	// Public API.
	r.Route("/api", func(r chi.Router) {
		r.Route("/trees", func(r chi.Router) {
			r.Get("/", trees.List)
			r.Get("/export", trees.Export)
			r.Get("/{id}", trees.Detail)
			r.Get("/{id}/tag", trees.Tag)
		})

		r.Get("/filters", trees.Filters)

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", wishlist.List)
			r.Delete("/", wishlist.Clear)
			r.Get("/export", wishlist.Export)
			r.Post("/{id}", wishlist.Toggle)
			r.Delete("/{id}", wishlist.Remove)
		})

		r.Get("/recent", wishlist.Recent)

		r.Get("/requests", requests.List)

		// Request intake is rate-limited to deter form spam.
		r.Group(func(r chi.Router) {
			limiter := middleware.NewRateLimiter(5, time.Minute)
			r.Use(limiter.Middleware)
			r.Post("/requests", requests.Create)
		})
	})

	// Admin API.
	r.Route("/admin/api", func(r chi.Router) {
		r.Get("/metrics", admin.Metrics)
		r.Get("/requests", admin.ListRequests)
		r.Put("/requests/{id}/status", admin.UpdateRequestStatus)
		r.Post("/catalog/reload", admin.ReloadCatalog)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
