package util

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPassword(t *testing.T) {
	password := "secret123"

	hashed, err := HashPassword(password)
	require.NoError(t, err)
	require.NotEmpty(t, hashed)

	err = CheckPassword(password, hashed)
	require.NoError(t, err)

	err = CheckPassword("wrong123", hashed)
	require.ErrorIs(t, err, bcrypt.ErrMismatchedHashAndPassword)

	// Hashing the same password twice must produce different salts.
	hashedAgain, err := HashPassword(password)
	require.NoError(t, err)
	require.NotEqual(t, hashed, hashedAgain)
}
