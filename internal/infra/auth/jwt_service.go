// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"bazaar/config"
	"bazaar/internal/domain/service"
)

// passwordRefLen is the number of hex characters of the digest hash embedded
// in token claims as the opaque password reference.
const passwordRefLen = 16

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	signingKey []byte        // Process-wide HMAC secret, loaded once at startup.
	tokenTTL   time.Duration // Fixed validity window of issued tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Signing == "" {
		return nil, errors.New("jwt signing key must be provided")
	}

	ttl := 24 * time.Hour
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return &jwtService{
		signingKey: []byte(cfg.SecretKey.Signing),
		tokenTTL:   ttl,
	}, nil
}

// Issue creates a new signed token embedding the user's identity claims.
func (s *jwtService) Issue(userID uuid.UUID, username, passwordDigest string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"name": username,
		"pwd":  passwordRef(passwordDigest),
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Validate verifies signature and expiry of a presented token.
// Expired tokens and malformed/tampered tokens yield distinct sentinel errors.
func (s *jwtService) Validate(tokenString string) (*service.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, service.ErrTokenExpired
		}

		return nil, service.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, service.ErrTokenInvalid
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, service.ErrTokenInvalid
	}

	return claimsFromMap(mapClaims)
}

// TokenTTL returns the configured validity window of issued tokens.
func (s *jwtService) TokenTTL() time.Duration {
	return s.tokenTTL
}

func claimsFromMap(mapClaims jwt.MapClaims) (*service.Claims, error) {
	sub, ok := mapClaims["sub"].(string)
	if !ok {
		return nil, service.ErrTokenInvalid
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, service.ErrTokenInvalid
	}

	username, ok := mapClaims["name"].(string)
	if !ok {
		return nil, service.ErrTokenInvalid
	}

	// The password reference is carried along but never trusted for anything
	// beyond log correlation.
	pwdRef, _ := mapClaims["pwd"].(string)

	claims := &service.Claims{
		UserID:      userID,
		Username:    username,
		PasswordRef: pwdRef,
	}

	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp
	}
	if iat, err := mapClaims.GetIssuedAt(); err == nil && iat != nil {
		claims.IssuedAt = iat
	}

	return claims, nil
}

// passwordRef derives the opaque password reference from a stored digest.
// The raw digest itself must never appear inside a token.
func passwordRef(passwordDigest string) string {
	sum := sha256.Sum256([]byte(passwordDigest))

	return hex.EncodeToString(sum[:])[:passwordRefLen]
}
