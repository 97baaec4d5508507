// Package router sets up all HTTP routes and middleware chains for the
// site: the public pages, the JSON API and the embedded static assets.
package router

import (
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"chriscakes/internal/handlers"
	"chriscakes/internal/middleware"
)

// Revalidation attempts allowed per client per minute.
const revalidateLimit = 10

// New creates and returns the configured Chi router with all middleware
// and route groups wired up. static is served under /static/. The API
// accepts browser posts from the request's own host and from origins.
func New(public *handlers.Public, api *handlers.API, static fs.FS, origins ...string) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	r.Handle("/static/*", http.StripPrefix("/static/", staticHandler(static)))

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.SameOrigin(origins...))
		r.Post("/contact", api.Contact)
		r.With(middleware.NewRateLimiter(revalidateLimit, time.Minute).Middleware).
			Post("/revalidate", api.Revalidate)
	})

	// Public pages. The slug route must stay last so fixed pages win.
	r.Get("/", public.Home)
	r.Get("/menu", public.Menu)
	r.Get("/contact", public.Contact)
	r.Get("/services", public.Services)
	r.Get("/fundraising", public.Fundraising)
	r.Get("/{slug}", public.Page)

	r.NotFound(public.NotFound)

	return r
}

// staticHandler serves embedded assets with a short public cache lifetime.
func staticHandler(static fs.FS) http.Handler {
	files := http.FileServerFS(static)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	})
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
