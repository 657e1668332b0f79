package auth

import (
	"context"
	"errors"
	"fmt"
)

// Service implements registration, login, and token verification on top of
// a UserRepository. It is stateless apart from the signing secret and safe
// for concurrent use.
type Service struct {
	users  UserRepository
	secret string
}

// NewService creates an auth service. An empty secret is allowed: login
// will fail with ErrSecretMissing until one is configured, but password
// verification and user management keep working.
func NewService(users UserRepository, secret string) *Service {
	return &Service{users: users, secret: secret}
}

// Register creates a new account. The plaintext password is hashed before
// storage and discarded; it never reaches the repository.
func (s *Service) Register(ctx context.Context, user *User, password string) error {
	if user.Name == "" || user.PaternalSurname == "" || user.MaternalSurname == "" ||
		user.Email == "" || password == "" {
		return fmt.Errorf("all fields are required")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash

	return s.users.Create(ctx, user)
}

// Login verifies credentials and mints a bearer token.
//
// Unknown email and wrong password both return ErrInvalidCredentials so
// the response shape never leaks which check failed.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !VerifyPassword(password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}

	return GenerateToken(user, s.secret)
}

// Verify validates a raw authorization header value and returns the claims.
// The "Bearer " scheme prefix is stripped before verification.
func (s *Service) Verify(header string) (*Claims, error) {
	return ParseToken(StripBearer(header), s.secret)
}
