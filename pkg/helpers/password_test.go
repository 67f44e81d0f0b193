package helpers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minbase/account-service/pkg/helpers"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := helpers.HashPassword("1234")
	require.NoError(t, err)

	assert.NotEqual(t, "1234", hash)
	assert.True(t, helpers.CompareHashAndPassword(hash, "1234"))
	assert.False(t, helpers.CompareHashAndPassword(hash, "1234x"))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := helpers.HashPassword("secret")
	require.NoError(t, err)
	h2, err := helpers.HashPassword("secret")
	require.NoError(t, err)

	// different salt, different digest, both verify
	assert.NotEqual(t, h1, h2)
	assert.True(t, helpers.CompareHashAndPassword(h1, "secret"))
	assert.True(t, helpers.CompareHashAndPassword(h2, "secret"))
}
