package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// tokenTTL is the fixed lifetime of a bearer token.
const tokenTTL = time.Hour

// bearerPrefix is the expected authorization scheme.
const bearerPrefix = "Bearer "

// Claims extends JWT registered claims with the authenticated user id.
// UserID mirrors Subject under the claim name the dashboard reads.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// GenerateToken mints a signed HS256 bearer token for a user.
// Tokens expire one hour after issuance and cannot be revoked early.
func GenerateToken(user *User, secret string) (string, error) {
	if secret == "" {
		return "", ErrSecretMissing
	}

	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			ID:        uuid.NewString(),
		},
		UserID: user.ID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// ParseToken validates a JWT bearer token and returns its claims.
// Any failure (bad signature, malformed token, elapsed expiry) maps to
// ErrTokenInvalid.
func ParseToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.UserID == "" {
		return nil, fmt.Errorf("%w: missing user id", ErrTokenInvalid)
	}

	return claims, nil
}

// StripBearer removes the "Bearer " scheme prefix from an authorization
// header value. Tokens sent without the scheme are accepted as-is.
func StripBearer(header string) string {
	return strings.TrimPrefix(header, bearerPrefix)
}
