// Package auth implements credential storage and token authentication.
//
// It owns the User account model (bcrypt-hashed passwords, unique emails),
// mints and verifies HS256 JWT bearer tokens with a fixed one-hour expiry,
// and exposes the Service used by the HTTP layer for register/login/verify.
//
// Tokens are stateless: nothing is stored server-side and there is no
// revocation list. Expiry is checked lazily at verification time.
package auth
