package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/incubadora-iot/core/internal/auth"
)

// userRequest is the body for registering or updating an account.
// Password is optional on update: when empty the stored hash is kept.
type userRequest struct {
	Name            string `json:"nombre"`
	PaternalSurname string `json:"apellidoP"`
	MaternalSurname string `json:"apellidoM"`
	Email           string `json:"email"`
	Password        string `json:"password"`
}

// handleListUsers returns every registered account.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		writeInternalError(w, "error interno del servidor")
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// handleRegisterUser creates an account.
func (s *Server) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "cuerpo de la petición inválido")
		return
	}

	user := &auth.User{
		Name:            req.Name,
		PaternalSurname: req.PaternalSurname,
		MaternalSurname: req.MaternalSurname,
		Email:           req.Email,
	}

	err := s.auth.Register(r.Context(), user, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, user)
	case errors.Is(err, auth.ErrEmailExists):
		writeConflict(w, "el email ya está registrado")
	default:
		writeBadRequest(w, err.Error())
	}
}

// handleGetUser returns one account. Guarded.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetByID(r.Context(), chi.URLParam(r, "id"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, user)
	case errors.Is(err, auth.ErrUserNotFound):
		writeNotFound(w, "usuario no encontrado")
	default:
		s.logger.Error("failed to get user", "error", err)
		writeInternalError(w, "error interno del servidor")
	}
}

// handleUpdateUser replaces an account's fields. An empty password keeps
// the stored hash; a non-empty one is re-hashed before persisting.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "cuerpo de la petición inválido")
		return
	}

	user, err := s.users.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, auth.ErrUserNotFound) {
		writeNotFound(w, "usuario no encontrado")
		return
	}
	if err != nil {
		s.logger.Error("failed to get user", "error", err)
		writeInternalError(w, "error interno del servidor")
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.PaternalSurname != "" {
		user.PaternalSurname = req.PaternalSurname
	}
	if req.MaternalSurname != "" {
		user.MaternalSurname = req.MaternalSurname
	}
	if req.Email != "" {
		user.Email = req.Email
	}

	hash, err := auth.ResolvePassword(user.PasswordHash, req.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		writeInternalError(w, "error interno del servidor")
		return
	}
	user.PasswordHash = hash

	switch err := s.users.Update(r.Context(), user); {
	case err == nil:
		writeJSON(w, http.StatusOK, user)
	case errors.Is(err, auth.ErrUserNotFound):
		writeNotFound(w, "usuario no encontrado")
	case errors.Is(err, auth.ErrEmailExists):
		writeConflict(w, "el email ya está registrado")
	default:
		s.logger.Error("failed to update user", "error", err)
		writeInternalError(w, "error interno del servidor")
	}
}

// handleDeleteUser removes an account.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	switch err := s.users.Delete(r.Context(), chi.URLParam(r, "id")); {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"mensaje": "Usuario eliminado"})
	case errors.Is(err, auth.ErrUserNotFound):
		writeNotFound(w, "usuario no encontrado")
	default:
		s.logger.Error("failed to delete user", "error", err)
		writeInternalError(w, "error interno del servidor")
	}
}
