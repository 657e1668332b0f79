package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// buildRouter creates the HTTP router with all routes and middleware.
//
// Guard placement is deliberate: only the profile and single-user lookup
// are behind the token check. Registration and the user list stay open so
// the dashboard can bootstrap its first account, and record routes are
// open because the incubator device itself posts readings without a token.
func (s *Server) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	r.Use(s.corsMiddleware)
	r.Use(s.bodySizeLimitMiddleware)

	r.Get("/health", s.handleHealth)

	r.Post("/api/login", s.handleLogin)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.handleListUsers)
		r.Post("/", s.handleRegisterUser)

		// Registered before /{id} so "perfil" is not captured as an id.
		r.With(s.requireAuth).Get("/perfil", s.handleProfile)

		r.With(s.requireAuth).Get("/{id}", s.handleGetUser)
		r.Put("/{id}", s.handleUpdateUser)
		r.Delete("/{id}", s.handleDeleteUser)
	})

	r.Route("/sensoresyactuadores", func(r chi.Router) {
		r.Get("/", s.handleListRecords)
		r.Get("/buscar", s.handleSearchRecords)
		r.Post("/", s.handleCreateRecord)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetRecord)
			r.Put("/", s.handleUpdateRecord)
			r.Delete("/", s.handleDeleteRecord)
		})
	})

	r.Get("/ws", s.handleWebSocket)

	return r
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}
