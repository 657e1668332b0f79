package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/incubadora-iot/core/internal/auth"
)

// loginRequest is the body of POST /api/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse carries the minted bearer token.
type loginResponse struct {
	Token string `json:"token"`
}

// handleLogin verifies credentials and returns a signed token.
//
// Unknown email and wrong password produce the same 401 body. A missing
// signing secret is the server's fault, not the caller's, so it maps
// to 500.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "cuerpo de la petición inválido")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeBadRequest(w, "email y password son requeridos")
		return
	}

	token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, loginResponse{Token: token})
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeUnauthorized(w, "credenciales inválidas")
	case errors.Is(err, auth.ErrSecretMissing):
		s.logger.Error("login failed: signing secret not configured")
		writeInternalError(w, "error de configuración del servidor")
	default:
		s.logger.Error("login failed", "error", err)
		writeInternalError(w, "error interno del servidor")
	}
}

// handleProfile echoes the verified claims back to the caller. The guard
// has already attached them to the context.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeUnauthorized(w, "token requerido")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"userId": claims.UserID,
		"exp":    claims.ExpiresAt,
	})
}
