package crypto

import (
	"crypto/ed25519"
	"encoding/hex"
)

const (
	// AuthKeySize is the size of an authentication key in bytes.
	AuthKeySize = 32
	// AuthKeyPrefixSize is the size of the prefix half of an
	// authentication key in bytes.
	AuthKeyPrefixSize = 16
	// DerivedAddressSize is the size of the account address derived
	// from an authentication key in bytes.
	DerivedAddressSize = 16
)

// AuthenticationKey is the 256-bit key an account is expected to
// authenticate against: SHA3-256 over the public key followed by the
// scheme byte. An account address is the second half of the initial
// authentication key; after a key rotation the stored authentication
// key changes while the address does not.
type AuthenticationKey [AuthKeySize]byte

// NewAuthKey computes the authentication key for a single Ed25519
// public key.
func NewAuthKey(pub ed25519.PublicKey) AuthenticationKey {
	return newAuthKey(pub, SchemeEd25519)
}

func newAuthKey(pub []byte, scheme Scheme) AuthenticationKey {
	return AuthenticationKey(Sha3Digest(pub, []byte{byte(scheme)}))
}

// DerivedAddress returns the account address for this authentication
// key: its last DerivedAddressSize bytes.
func (ak AuthenticationKey) DerivedAddress() [DerivedAddressSize]byte {
	var addr [DerivedAddressSize]byte
	copy(addr[:], ak[AuthKeySize-DerivedAddressSize:])
	return addr
}

// Prefix returns the first half of the authentication key. Creation
// operations take the prefix and reconstruct the full key by appending
// the new account's address.
func (ak AuthenticationKey) Prefix() []byte {
	out := make([]byte, AuthKeyPrefixSize)
	copy(out, ak[:AuthKeyPrefixSize])
	return out
}

// Bytes returns the authentication key as a byte slice copy.
func (ak AuthenticationKey) Bytes() []byte {
	out := make([]byte, AuthKeySize)
	copy(out, ak[:])
	return out
}

// Hex returns the lowercase hex encoding of the authentication key.
func (ak AuthenticationKey) Hex() string {
	return hex.EncodeToString(ak[:])
}
