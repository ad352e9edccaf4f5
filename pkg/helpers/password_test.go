package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func fastHasher() *PasswordHasher { return NewPasswordHasher(1, 1024, 1) }

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := fastHasher()
	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"))
	assert.NotContains(t, hash, "secret1")

	ok, err := h.Compare(hash, "secret1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare(hash, "secret2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_SaltsDiffer(t *testing.T) {
	h := fastHasher()
	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestPasswordHasher_VerifiesWithStoredParams(t *testing.T) {
	hash, err := NewPasswordHasher(2, 2048, 2).Hash("pw")
	require.NoError(t, err)
	ok, err := fastHasher().Compare(hash, "pw")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPasswordHasher_Bcrypt(t *testing.T) {
	b, err := bcrypt.GenerateFromPassword([]byte("legacy"), bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := fastHasher().Compare(string(b), "legacy")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = fastHasher().Compare(string(b), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_Malformed(t *testing.T) {
	for _, hash := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$abc",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$garbage$c2FsdA$aGFzaA",
	} {
		ok, err := fastHasher().Compare(hash, "x")
		assert.False(t, ok, hash)
		assert.ErrorIs(t, err, ErrMalformedHash, hash)
	}
}
