package password

import (
	"strings"
	"testing"

	"github.com/alexedwards/argon2id"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// лёгкие параметры, чтобы тест не жёг память
func testHasher() *Hasher {
	return New(&argon2id.Params{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	})
}

func TestHashAndVerify(t *testing.T) {
	h := testHasher()

	enc, err := h.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(enc, "$argon2id$"))

	ok, err := h.Verify("correct horse battery staple", enc)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("wrong password", enc)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashWithoutParams(t *testing.T) {
	var h *Hasher
	_, err := h.Hash("anything")
	assert.Error(t, err)
}
