package types

import (
	"testing"

	"github.com/LeJamon/goLibra/internal/codec/lcs"
	"github.com/LeJamon/goLibra/internal/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressFromHex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		hex   string
	}{
		{"full width", "0000000000000000000000000a550c18", "0000000000000000000000000a550c18"},
		{"short literal left-padded", "a550c18", "0000000000000000000000000a550c18"},
		{"0x prefix", "0x1", "00000000000000000000000000000001"},
		{"odd length", "b1e55ed", "0000000000000000000000000b1e55ed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := AddressFromHex(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.hex, addr.Hex())
		})
	}

	t.Run("rejects invalid", func(t *testing.T) {
		for _, bad := range []string{"", "0x", "not-hex", "00112233445566778899aabbccddeeff00"} {
			_, err := AddressFromHex(bad)
			assert.ErrorIs(t, err, ErrInvalidAddress, "input %q", bad)
		}
	})
}

func TestAddressFromBytes(t *testing.T) {
	b := make([]byte, AddressLength)
	b[15] = 0x01

	addr, err := AddressFromBytes(b)
	require.NoError(t, err)
	assert.Equal(t, "00000000000000000000000000000001", addr.Hex())

	_, err = AddressFromBytes(b[:10])
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestAddressFromPublicKey(t *testing.T) {
	// RFC 8032 test 1 public key; the address is the tail of the
	// authentication key.
	pub, err := crypto.PublicKeyFromHex("d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")
	require.NoError(t, err)

	addr := AddressFromPublicKey(pub)
	assert.Equal(t, "f4eb152cfd2054c1080fd9d57c48913b", addr.Hex())

	ak := crypto.NewAuthKey(pub)
	derived := ak.DerivedAddress()
	assert.Equal(t, derived[:], addr.Bytes())
}

func TestAddressIsZero(t *testing.T) {
	var zero AccountAddress
	assert.True(t, zero.IsZero())
	assert.False(t, MustAddressFromHex("1").IsZero())
}

func TestAddressLCSRoundTrip(t *testing.T) {
	addr := MustAddressFromHex("a550c18")

	e := lcs.NewEncoder()
	addr.EncodeLCS(e)
	// Fixed width, no length prefix.
	require.Equal(t, AddressLength, e.Len())

	got, err := DecodeAddress(lcs.NewDecoder(e.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, addr, got)
}
