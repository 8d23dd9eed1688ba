package crypto

import (
	"crypto/rand"
	"errors"
	"io"
)

// ErrRandomGeneration is returned when random number generation fails.
var ErrRandomGeneration = errors.New("failed to generate random bytes")

// RandomBytes generates n cryptographically secure random bytes.
// It uses crypto/rand which reads from the system's CSPRNG.
func RandomBytes(n int) ([]byte, error) {
	if n <= 0 {
		return nil, nil
	}

	b := make([]byte, n)
	_, err := io.ReadFull(rand.Reader, b)
	if err != nil {
		return nil, ErrRandomGeneration
	}
	return b, nil
}

// RandomSeed generates a random 32-byte seed suitable for Ed25519 key
// derivation or for seeding a KeyGen.
func RandomSeed() ([SeedSize]byte, error) {
	var seed [SeedSize]byte
	b, err := RandomBytes(SeedSize)
	if err != nil {
		return seed, err
	}
	copy(seed[:], b)
	SecureErase(b)
	return seed, nil
}
