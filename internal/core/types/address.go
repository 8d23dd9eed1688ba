// Package types defines the core ledger data types shared across the
// module: account addresses, identifiers, type tags, access paths, and
// write-sets.
package types

import (
	"encoding/hex"
	"errors"
	"fmt"

	"crypto/ed25519"

	"github.com/LeJamon/goLibra/internal/codec/lcs"
	"github.com/LeJamon/goLibra/internal/crypto"
)

// AddressLength is the size of an account address in bytes.
const AddressLength = 16

// ErrInvalidAddress is returned when parsing an address fails.
var ErrInvalidAddress = errors.New("invalid account address")

// AccountAddress is a 128-bit account identifier. For key-derived
// accounts it is the tail of the initial authentication key; well-known
// accounts use fixed addresses.
type AccountAddress [AddressLength]byte

// AddressFromPublicKey derives the address owned by an Ed25519 public
// key. The derivation is one-way: the address never changes, even after
// the account rotates to a new key.
func AddressFromPublicKey(pub ed25519.PublicKey) AccountAddress {
	return AccountAddress(crypto.NewAuthKey(pub).DerivedAddress())
}

// AddressFromBytes converts a 16-byte slice into an address.
func AddressFromBytes(b []byte) (AccountAddress, error) {
	var addr AccountAddress
	if len(b) != AddressLength {
		return addr, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidAddress, len(b), AddressLength)
	}
	copy(addr[:], b)
	return addr, nil
}

// AddressFromHex parses a hex address. Short input is left-padded with
// zeros, so literals like "a550c18" resolve to the full 16-byte form.
// An optional "0x" prefix is accepted.
func AddressFromHex(s string) (AccountAddress, error) {
	var addr AccountAddress
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s) == 0 || len(s) > 2*AddressLength {
		return addr, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return addr, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	copy(addr[AddressLength-len(b):], b)
	return addr, nil
}

// MustAddressFromHex parses a hex address and panics on failure. For
// package-level constants only.
func MustAddressFromHex(s string) AccountAddress {
	addr, err := AddressFromHex(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// Bytes returns the address as a byte slice copy.
func (a AccountAddress) Bytes() []byte {
	out := make([]byte, AddressLength)
	copy(out, a[:])
	return out
}

// Hex returns the lowercase hex encoding without a prefix.
func (a AccountAddress) Hex() string {
	return hex.EncodeToString(a[:])
}

// String implements fmt.Stringer.
func (a AccountAddress) String() string {
	return a.Hex()
}

// IsZero reports whether the address is all zeros.
func (a AccountAddress) IsZero() bool {
	return a == AccountAddress{}
}

// EncodeLCS writes the address as 16 raw bytes. Addresses are fixed
// width and carry no length prefix.
func (a AccountAddress) EncodeLCS(e *lcs.Encoder) {
	e.WriteFixedBytes(a[:])
}

// DecodeAddress reads a fixed-width address from d.
func DecodeAddress(d *lcs.Decoder) (AccountAddress, error) {
	b, err := d.ReadFixedBytes(AddressLength)
	if err != nil {
		return AccountAddress{}, err
	}
	return AddressFromBytes(b)
}
