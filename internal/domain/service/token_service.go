package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token validation failure modes. Both map to the same external
// "unauthenticated" result; the distinction exists for logs and tests.
var (
	// ErrTokenInvalid indicates a malformed, unsigned or tampered token.
	ErrTokenInvalid = errors.New("token invalid")

	// ErrTokenExpired indicates a well-formed token whose validity window has passed.
	ErrTokenExpired = errors.New("token expired")
)

// Claims defines the custom claims embedded in issued tokens.
// PasswordRef is an opaque reference derived from the stored password digest,
// never the digest itself.
type Claims struct {
	UserID      uuid.UUID
	Username    string
	PasswordRef string
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue mints a signed, time-bounded token for the given identity.
	// Two calls with identical identity at different instants produce
	// different tokens.
	Issue(userID uuid.UUID, username, passwordDigest string) (string, error)

	// Validate checks signature and expiry of a presented token, yielding the
	// embedded claims on success. It is purely functional over
	// (token, current time, key) and returns ErrTokenExpired or
	// ErrTokenInvalid on rejection.
	Validate(tokenString string) (*Claims, error)

	// TokenTTL returns the configured validity window of issued tokens.
	TokenTTL() time.Duration
}
