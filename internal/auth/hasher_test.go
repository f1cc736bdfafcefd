package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	stored, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("correct horse battery staple", stored))
	assert.False(t, VerifyPassword("wrong password", stored))
	assert.False(t, VerifyPassword("", stored))
}

func TestHashFormat(t *testing.T) {
	stored, err := HashPassword("pw")
	require.NoError(t, err)

	salt, digest, found := strings.Cut(stored, "$")
	require.True(t, found)
	// 16-byte salt and 32-byte digest, hex encoded.
	assert.Len(t, salt, 32)
	assert.Len(t, digest, 64)
}

func TestHashIsSalted(t *testing.T) {
	first, err := HashPassword("same password")
	require.NoError(t, err)
	second, err := HashPassword("same password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("same password", first))
	assert.True(t, VerifyPassword("same password", second))
}

func TestVerifyMalformedStoredHash(t *testing.T) {
	cases := []string{
		"",
		"no-separator",
		"$",
		"abcd$",
		"$abcd",
		"zzzz$abcd",
		"abcd$zzzz",
		"abc$abcd", // odd-length hex salt
	}
	for _, stored := range cases {
		assert.False(t, VerifyPassword("anything", stored), "stored=%q", stored)
	}
}
