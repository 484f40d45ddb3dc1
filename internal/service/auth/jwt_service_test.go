package auth_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/flashdeck-api/internal/config"
	"github.com/flashdeck/flashdeck-api/internal/service/auth"
)

const testJWTSecret = "test-secret-key-thats-32-chars!!"

func newTestJWTService(t *testing.T, lifetimeMinutes int) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            testJWTSecret,
		TokenLifetimeMinutes: lifetimeMinutes,
	})
	require.NoError(t, err)
	return svc
}

func TestNewJWTServiceRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "too-short",
		TokenLifetimeMinutes: 60,
	})
	assert.Error(t, err)
}

func TestJWTServiceRoundTrip(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t, 60)
	ctx := context.Background()
	userID := uuid.New()

	token, err := svc.GenerateToken(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestJWTServiceRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	// A negative lifetime produces a token whose expiry is already past,
	// well beyond the validation leeway.
	svc := newTestJWTService(t, -60)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

func TestJWTServiceRejectsTamperedToken(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t, 60)
	ctx := context.Background()

	token, err := svc.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	// Flip a character in the signature segment.
	tampered := token[:len(token)-2] + "xx"

	_, err = svc.ValidateToken(ctx, tampered)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTServiceRejectsForeignToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc := newTestJWTService(t, 60)

	other, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:            "another-secret-key-32-chars-long",
		TokenLifetimeMinutes: 60,
	})
	require.NoError(t, err)

	token, err := other.GenerateToken(ctx, uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestJWTServiceRejectsGarbage(t *testing.T) {
	t.Parallel()

	svc := newTestJWTService(t, 60)
	_, err := svc.ValidateToken(context.Background(), "not.a.token")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
