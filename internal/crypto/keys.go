package crypto

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
)

var (
	// ErrInvalidSeedLength is returned when a seed is not SeedSize bytes.
	ErrInvalidSeedLength = errors.New("invalid seed length")
	// ErrInvalidPublicKey is returned when a public key has the wrong size.
	ErrInvalidPublicKey = errors.New("invalid public key")
)

const (
	// SeedSize is the size of an Ed25519 private key seed in bytes.
	SeedSize = ed25519.SeedSize
	// PublicKeySize is the size of an Ed25519 public key in bytes.
	PublicKeySize = ed25519.PublicKeySize
	// SignatureSize is the size of an Ed25519 signature in bytes.
	SignatureSize = ed25519.SignatureSize
)

// KeyPair holds an Ed25519 signing key pair. The zero value is invalid;
// construct with NewKeyPair, KeyPairFromSeed, or a KeyGen.
type KeyPair struct {
	Private ed25519.PrivateKey
	Public  ed25519.PublicKey
}

// NewKeyPair generates a fresh key pair from the system CSPRNG.
func NewKeyPair() (KeyPair, error) {
	seed, err := RandomBytes(SeedSize)
	if err != nil {
		return KeyPair{}, err
	}
	defer SecureErase(seed)

	priv := ed25519.NewKeyFromSeed(seed)
	return KeyPair{
		Private: priv,
		Public:  priv.Public().(ed25519.PublicKey),
	}, nil
}

// KeyPairFromSeed derives a key pair from a 32-byte seed. The same seed
// always yields the same pair.
func KeyPairFromSeed(seed []byte) (KeyPair, error) {
	if len(seed) != SeedSize {
		return KeyPair{}, ErrInvalidSeedLength
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return KeyPair{
		Private: priv,
		Public:  priv.Public().(ed25519.PublicKey),
	}, nil
}

// PublicKeyFromHex parses a hex-encoded Ed25519 public key.
func PublicKeyFromHex(s string) (ed25519.PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, ErrInvalidPublicKey
	}
	if len(b) != PublicKeySize {
		return nil, ErrInvalidPublicKey
	}
	return ed25519.PublicKey(b), nil
}

// AuthKey returns the authentication key for the pair's public key.
func (kp KeyPair) AuthKey() AuthenticationKey {
	return NewAuthKey(kp.Public)
}

// SignDigest signs a 32-byte digest with the private key.
func (kp KeyPair) SignDigest(digest [32]byte) []byte {
	return ed25519.Sign(kp.Private, digest[:])
}

// Destroy wipes the private key material. The pair is unusable afterwards.
func (kp *KeyPair) Destroy() {
	SecureErase(kp.Private)
	kp.Private = nil
}

// VerifyDigest reports whether sig is a valid signature of digest under pub.
func VerifyDigest(pub ed25519.PublicKey, digest [32]byte, sig []byte) bool {
	if len(pub) != PublicKeySize || len(sig) != SignatureSize {
		return false
	}
	return ed25519.Verify(pub, digest[:], sig)
}
