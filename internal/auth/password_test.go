package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndComparePassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$")
	assert.NotContains(t, hash, "hunter2")

	ok, err := ComparePassword("hunter2", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ComparePassword("hunter3", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsSalted(t *testing.T) {
	a, err := HashPassword("same")
	require.NoError(t, err)
	b, err := HashPassword("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCompareRejectsMalformedHash(t *testing.T) {
	_, err := ComparePassword("x", "not-a-hash")
	require.ErrorIs(t, err, ErrInvalidHash)
}
