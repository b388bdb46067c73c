/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       The kiosk frontend is served separately during dev

SECURITY NOTE:
  No authentication. The server binds a single kiosk/editor box; the
  only credential in the system is the remote write token, which the
  sheets backend checks, not this server.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.GetState)

		r.Route("/calendar", func(r chi.Router) {
			r.Put("/year", h.SetYear)
			r.Put("/month", h.SelectMonth)
			r.Post("/{month}/days/{day}/advance", h.AdvanceDay)
			r.Post("/autofill", h.TriggerAutoFill)
		})

		r.Route("/announcements", func(r chi.Router) {
			r.Post("/", h.CreateAnnouncement)
			r.Put("/{id}", h.UpdateAnnouncement)
			r.Delete("/{id}", h.DeleteAnnouncement)
		})

		r.Route("/incidents", func(r chi.Router) {
			r.Post("/", h.CreateIncident)
			r.Delete("/", h.ClearIncidents)
			r.Delete("/{id}", h.DeleteIncident)
		})

		r.Put("/manhours", h.SetManHours)

		r.Route("/policy-image", func(r chi.Router) {
			r.Put("/", h.SetPolicyImage)
			r.Delete("/", h.ClearPolicyImage)
		})

		r.Get("/export", h.Export)
		r.Post("/import", h.Import)

		r.Route("/sync", func(r chi.Router) {
			r.Get("/", h.GetSyncConfig)
			r.Put("/", h.PutSyncConfig)
			r.Get("/status", h.GetSyncStatus)
			r.Post("/pull", h.PullNow)
			r.Post("/push", h.PushNow)
		})
	})

	return r
}
