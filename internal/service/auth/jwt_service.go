// Package auth provides the authentication services: token issuance and
// validation, password hashing, and the in-memory login-attempt throttle.
package auth

import (
	"context"

	"github.com/google/uuid"
)

// Claims holds the validated identity extracted from a token.
type Claims struct {
	UserID uuid.UUID
}

// JWTService issues and validates authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed token carrying the user's identity.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken verifies a token and returns its claims.
	// Returns ErrExpiredToken, ErrTokenNotYetValid or ErrInvalidToken on
	// validation failure.
	ValidateToken(ctx context.Context, token string) (*Claims, error)
}
