package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken("user-1", "jobseeker", "secret", time.Hour)
	require.NoError(t, err)

	claims, err := ParseSessionToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "jobseeker", claims.Role)
}

func TestSessionTokenWrongSecret(t *testing.T) {
	token, err := GenerateSessionToken("user-1", "jobseeker", "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseSessionToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionTokenExpired(t *testing.T) {
	token, err := GenerateSessionToken("user-1", "jobseeker", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseSessionToken(token, "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSessionTokenGarbage(t *testing.T) {
	_, err := ParseSessionToken("not-a-token", "secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
