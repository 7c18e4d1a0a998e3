package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "12345678901234567890123456789012"

func TestJWTMaker(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	userID := uuid.NewString()
	role := "team_owner"
	duration := time.Minute

	issuedAt := time.Now()
	expiresAt := issuedAt.Add(duration)

	tokenStr, payload, err := maker.CreateToken(userID, role, duration)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)
	require.NotNil(t, payload)

	payload, err = maker.VerifyToken(tokenStr)
	require.NoError(t, err)
	require.Equal(t, userID, payload.Subject)
	require.Equal(t, role, payload.Role)
	require.WithinDuration(t, issuedAt, payload.IssuedAt.Time, time.Second)
	require.WithinDuration(t, expiresAt, payload.ExpiresAt.Time, time.Second)
}

func TestExpiredJWTToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	tokenStr, payload, err := maker.CreateToken(uuid.NewString(), "viewer", -time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tokenStr)
	require.NotNil(t, payload)

	payload, err = maker.VerifyToken(tokenStr)
	require.ErrorIs(t, err, ErrExpiredToken)
	require.Nil(t, payload)
}

func TestInvalidJWTToken(t *testing.T) {
	maker, err := NewJWTMaker(testSecretKey)
	require.NoError(t, err)

	payload, err := maker.VerifyToken("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)
	require.Nil(t, payload)
}

func TestRejectsShortSecretKey(t *testing.T) {
	maker, err := NewJWTMaker("too short")
	require.Error(t, err)
	require.Nil(t, maker)
}
