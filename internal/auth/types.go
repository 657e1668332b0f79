package auth

import (
	"errors"
	"time"
)

// User represents a registered account.
//
// The JSON field names match the wire format the incubator dashboard uses
// (Spanish field names from the device's original firmware contract).
// PasswordHash is never serialised.
type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"nombre"`
	PaternalSurname string    `json:"apellidoP"`
	MaternalSurname string    `json:"apellidoM"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Sentinel errors for auth operations.
var (
	// ErrInvalidCredentials covers both unknown email and wrong password.
	// Callers must not be able to tell which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUserNotFound = errors.New("user not found")
	ErrEmailExists  = errors.New("email already registered")
	ErrTokenInvalid = errors.New("invalid or expired token")

	// ErrSecretMissing is returned when no JWT signing secret is configured.
	ErrSecretMissing = errors.New("jwt signing secret is not configured")
)
