package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testParams keeps the memory cost low so the suite stays fast.
var testParams = Params{
	Memory:      8 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func TestArgon2Hasher_RoundTrip(t *testing.T) {
	h := NewArgon2Hasher(testParams)

	encoded, err := h.Hash("password123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	assert.NoError(t, h.Verify("password123", encoded))
	assert.ErrorIs(t, h.Verify("password124", encoded), ErrMismatch)
}

func TestArgon2Hasher_SaltedHashesDiffer(t *testing.T) {
	h := NewArgon2Hasher(testParams)

	a, err := h.Hash("samepassword")
	require.NoError(t, err)
	b, err := h.Hash("samepassword")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestArgon2Hasher_MalformedHashIsNotMismatch(t *testing.T) {
	h := NewArgon2Hasher(testParams)

	err := h.Verify("whatever", "not-a-phc-string")
	require.Error(t, err)
	// A decode failure must stay distinguishable from a wrong password.
	assert.NotErrorIs(t, err, ErrMismatch)
}

func TestArgon2Hasher_VerifyUsesEmbeddedParams(t *testing.T) {
	// Hash with one parameter set, verify with a hasher configured
	// differently; the stored hash carries its own params.
	a := NewArgon2Hasher(testParams)
	encoded, err := a.Hash("password123")
	require.NoError(t, err)

	b := NewArgon2Hasher(Params{Memory: 16 * 1024, Iterations: 2, Parallelism: 2, SaltLength: 16, KeyLength: 32})
	assert.NoError(t, b.Verify("password123", encoded))
}
