package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("sup3r-secret", 0)
	require.NoError(t, err)
	assert.NotEqual(t, "sup3r-secret", hash)

	assert.True(t, CheckPasswordHash("sup3r-secret", hash))
	assert.False(t, CheckPasswordHash("wrong-guess", hash))
}

func TestGenerateCodeIsUnique(t *testing.T) {
	a := GenerateCode()
	b := GenerateCode()

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}
