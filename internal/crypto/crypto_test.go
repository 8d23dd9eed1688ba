package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSha3Digest(t *testing.T) {
	// NIST SHA3-256 vector.
	got := Sha3Digest([]byte("abc"))
	assert.Equal(t, "3a985da74fe225b2045c172d6bd390bd855f086e3e9d525b46bfe24511431532",
		hex.EncodeToString(got[:]))
}

func TestSha3DigestConcatenation(t *testing.T) {
	// Hashing parts must equal hashing their concatenation.
	whole := Sha3Digest([]byte("abc"))
	parts := Sha3Digest([]byte("a"), []byte("b"), []byte("c"))
	assert.Equal(t, whole, parts)

	empty := Sha3Digest()
	noParts := Sha3Digest([]byte{})
	assert.Equal(t, empty, noParts)
}

func TestRandomBytes(t *testing.T) {
	t.Run("requested length", func(t *testing.T) {
		b, err := RandomBytes(32)
		require.NoError(t, err)
		assert.Len(t, b, 32)
	})

	t.Run("zero and negative return nil", func(t *testing.T) {
		b, err := RandomBytes(0)
		require.NoError(t, err)
		assert.Nil(t, b)

		b, err = RandomBytes(-5)
		require.NoError(t, err)
		assert.Nil(t, b)
	})

	t.Run("successive draws differ", func(t *testing.T) {
		a, err := RandomBytes(32)
		require.NoError(t, err)
		b, err := RandomBytes(32)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

func TestRandomSeed(t *testing.T) {
	a, err := RandomSeed()
	require.NoError(t, err)
	b, err := RandomSeed()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSecureErase(t *testing.T) {
	b := []byte{0xde, 0xad, 0xbe, 0xef}
	SecureErase(b)
	assert.Equal(t, []byte{0, 0, 0, 0}, b)

	// Must not panic on empty input.
	SecureErase(nil)
	SecureErase([]byte{})
}

func TestSchemeString(t *testing.T) {
	assert.Equal(t, "ed25519", SchemeEd25519.String())
	assert.Equal(t, "multi-ed25519", SchemeMultiEd25519.String())
	assert.Equal(t, "unknown", Scheme(0x7f).String())
}
