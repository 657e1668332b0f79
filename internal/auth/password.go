package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the fixed work factor for password hashing.
const bcryptCost = 10

// HashPassword hashes a plaintext password with bcrypt.
// The salt is generated per call and embedded in the output.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword checks a plaintext password against a stored bcrypt hash.
// Returns true if the password matches.
func VerifyPassword(password, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}

// ResolvePassword decides the password hash to persist on a profile update.
//
// Hashing must happen exactly once per password-set event: an empty
// submitted password means "unchanged" and the stored hash is kept as is,
// so unrelated profile edits never rehash (and never double-hash) the
// stored value.
func ResolvePassword(storedHash, submitted string) (string, error) {
	if submitted == "" {
		return storedHash, nil
	}
	return HashPassword(submitted)
}
