package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	encoded, err := hashPassword("correct horse", 1000)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$pbkdf2-sha256$i=1000,l=32$"))

	assert.NoError(t, VerifyPassword("correct horse", encoded))
	assert.ErrorIs(t, VerifyPassword("battery staple", encoded), ErrInvalidCredentials)

	again, err := hashPassword("correct horse", 1000)
	require.NoError(t, err)
	assert.NotEqual(t, encoded, again, "salts must differ")
}

func TestHashPassword_DefaultIterations(t *testing.T) {
	t.Parallel()

	encoded, err := HashPassword("secret")
	require.NoError(t, err)
	assert.Contains(t, encoded, "i=100000")
	assert.NoError(t, VerifyPassword("secret", encoded))
}

func TestVerifyPassword_KnownVector(t *testing.T) {
	t.Parallel()

	// PBKDF2-HMAC-SHA256 with P="passwd", S="salt", c=1, dkLen=64
	encoded := "$pbkdf2-sha256$i=1,l=64$c2FsdA$" +
		"VawEblbjCJ/sFpHCJUS2BflBhSFt3gRl5oudV8INrLxJypzM8Xm2RZkWZLOdd+8xfHG4RbHjC9UJESBB06GXgw"
	assert.NoError(t, VerifyPassword("passwd", encoded))
	assert.ErrorIs(t, VerifyPassword("password", encoded), ErrInvalidCredentials)
}

func TestVerifyPassword_Malformed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		encoded string
	}{
		{name: "empty", encoded: ""},
		{name: "plain text", encoded: "hunter2"},
		{name: "unknown algorithm", encoded: "$argon2id$v=19$c2FsdA$aGFzaA"},
		{name: "missing iterations", encoded: "$pbkdf2-sha256$l=32$c2FsdA$aGFzaA"},
		{name: "bad iterations", encoded: "$pbkdf2-sha256$i=abc$c2FsdA$aGFzaA"},
		{name: "bad param", encoded: "$pbkdf2-sha256$i$c2FsdA$aGFzaA"},
		{name: "bad salt", encoded: "$pbkdf2-sha256$i=10$!!$aGFzaA"},
		{name: "empty hash", encoded: "$pbkdf2-sha256$i=10$c2FsdA$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, VerifyPassword("x", tt.encoded), ErrMalformedHash)
		})
	}
}
