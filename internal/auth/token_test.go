package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")

	token, err := GenerateToken("user-123", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-123", []byte("secret"), time.Hour)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("other-secret"))
	assert.Error(t, err)
}

func TestTokenExpired(t *testing.T) {
	token, err := GenerateToken("user-123", []byte("secret"), -time.Minute)
	require.NoError(t, err)

	_, err = ParseToken(token, []byte("secret"))
	assert.Error(t, err)
}

func TestTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", []byte("secret"))
	assert.Error(t, err)
}
