package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCheckRoundTrip(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.True(t, h.Check("secret1", hash))
	assert.False(t, h.Check("wrongpassword", hash))
}

func TestHashSaltsEveryCall(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash1, err := h.Hash("secret1")
	require.NoError(t, err)
	hash2, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
	assert.True(t, h.Check("secret1", hash1))
	assert.True(t, h.Check("secret1", hash2))
}

func TestCheckMalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	assert.False(t, h.Check("secret1", ""))
	assert.False(t, h.Check("secret1", "not-a-bcrypt-hash"))
}

func TestLooksHashed(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.True(t, LooksHashed(hash))
	assert.True(t, LooksHashed("$2a$12$abcdefghijklmnopqrstuv"))
	assert.True(t, LooksHashed("$2y$10$abcdefghijklmnopqrstuv"))
	assert.False(t, LooksHashed("plainPassword123"))
	assert.False(t, LooksHashed(""))
	assert.False(t, LooksHashed("$1$legacy"))
}

func TestNewPasswordHasherClampsInvalidCost(t *testing.T) {
	h := NewPasswordHasher(99)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}
