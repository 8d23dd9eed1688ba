package crypto

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthKey(t *testing.T) {
	// Public keys are the RFC 8032 test vectors; the expected values are
	// SHA3-256 over the public key followed by the Ed25519 scheme byte.
	tests := []struct {
		name      string
		publicKey string
		authKey   string
	}{
		{
			name:      "RFC 8032 test 1",
			publicKey: "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a",
			authKey:   "63c5215e87770d17b9f4cd47c777e322f4eb152cfd2054c1080fd9d57c48913b",
		},
		{
			name:      "RFC 8032 test 2",
			publicKey: "3d4017c3e843895a92b70aa74d1b7ebc9c982ccf2ec4968cc0cd55f12af4660c",
			authKey:   "c0b0918edf3a763a3001744584b0d26873ec883e02af5e7cfa88e50240ac1032",
		},
		{
			name:      "RFC 8032 test 3",
			publicKey: "fc51cd8e6218a1a38da47ed00230f0580816ed13ba3303ac5deb911548908025",
			authKey:   "f240e7773f5c417077b620a729265dd288773aa41d3395499c6678ec5146aaf2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub, err := PublicKeyFromHex(tt.publicKey)
			require.NoError(t, err)

			ak := NewAuthKey(pub)
			assert.Equal(t, tt.authKey, ak.Hex())
		})
	}
}

func TestAuthKeySplit(t *testing.T) {
	pub, err := PublicKeyFromHex("d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")
	require.NoError(t, err)

	ak := NewAuthKey(pub)
	addr := ak.DerivedAddress()

	// prefix || address reconstructs the full key
	assert.Equal(t, ak.Bytes(), append(ak.Prefix(), addr[:]...))
	assert.Equal(t, "63c5215e87770d17b9f4cd47c777e322", hex.EncodeToString(ak.Prefix()))
	assert.Equal(t, "f4eb152cfd2054c1080fd9d57c48913b", hex.EncodeToString(addr[:]))
}

func TestAuthKeyDiffersPerKey(t *testing.T) {
	a, err := NewKeyPair()
	require.NoError(t, err)
	b, err := NewKeyPair()
	require.NoError(t, err)

	assert.NotEqual(t, a.AuthKey(), b.AuthKey())
	assert.NotEqual(t, a.AuthKey().DerivedAddress(), b.AuthKey().DerivedAddress())
}

func TestAuthKeyDeterministic(t *testing.T) {
	pub, err := PublicKeyFromHex("3d4017c3e843895a92b70aa74d1b7ebc9c982ccf2ec4968cc0cd55f12af4660c")
	require.NoError(t, err)

	assert.Equal(t, NewAuthKey(pub), NewAuthKey(pub))
}
