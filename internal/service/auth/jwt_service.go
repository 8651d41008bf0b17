package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for subject (the user's email).
	// Returns the token string and the instant it expires.
	GenerateToken(ctx context.Context, subject string) (string, time.Time, error)

	// ValidateToken validates the provided access token string and extracts the claims.
	// Every failure (malformed input, bad signature, expiry) is reported as
	// ErrInvalidToken, ErrExpiredToken or ErrTokenNotYetValid; it never panics.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of an access token.
type Claims struct {
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
