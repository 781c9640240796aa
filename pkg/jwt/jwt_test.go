package jwt

import (
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(userID, "user@orama.io", "USER")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "user@orama.io", claims.Email)
	assert.Equal(t, "USER", claims.Role)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewJWTService("test-secret", -time.Minute, -time.Minute)

	pair, err := svc.GenerateTokenPair(uuid.New(), "user@orama.io", "USER")
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateToken_InvalidInputs(t *testing.T) {
	svc := NewJWTService("test-secret", time.Minute, time.Hour)

	_, err := svc.ValidateToken("garbage")
	require.ErrorIs(t, err, ErrInvalidToken)

	other := NewJWTService("other-secret", time.Minute, time.Hour)
	pair, err := other.GenerateTokenPair(uuid.New(), "user@orama.io", "USER")
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenExpiry(t *testing.T) {
	svc := NewJWTService("test-secret", 15*time.Minute, time.Hour)
	pair, err := svc.GenerateTokenPair(uuid.New(), "user@orama.io", "USER")
	require.NoError(t, err)

	expiry, err := svc.TokenExpiry(pair.AccessToken)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiry, time.Minute)
}

func TestGenerateTokenPair_SigningError(t *testing.T) {
	orig := signJWTToken
	defer func() { signJWTToken = orig }()

	signJWTToken = func(*jwtlib.Token, []byte) (string, error) {
		return "", errors.New("boom")
	}

	svc := NewJWTService("test-secret", time.Minute, time.Hour)
	_, err := svc.GenerateTokenPair(uuid.New(), "user@orama.io", "USER")
	require.Error(t, err)
}
