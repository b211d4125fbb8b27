package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wardenlabs/warden/internal/auth"
)

// buildRouter creates the HTTP router with all routes and middleware.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check and metrics (no auth required)
		r.Get("/health", s.handleHealth)
		r.Get("/metrics", s.handleMetrics)

		// Session endpoints (no access token required; refresh and logout
		// authenticate via the renewal cookie instead)
		r.Post("/auth/login", s.handleLogin)
		r.Get("/auth/refresh", s.handleRefresh)
		r.Post("/auth/logout", s.handleLogout)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(s.authMiddleware)

			r.Get("/auth/me", s.handleMe)

			// Supervisory surfaces
			r.Group(func(r chi.Router) {
				r.Use(s.requireRoles(auth.RoleManager, auth.RoleAdmin))
				r.Get("/audit", s.handleAuditList)
			})
		})
	})

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err != nil {
			status = "degraded"
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  status,
		"version": s.version,
	})
}
