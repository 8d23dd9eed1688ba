package crypto

import "encoding/binary"

// KeyGen produces a deterministic sequence of key pairs from a seed.
// Fixtures built with the same seed get identical account identities,
// which keeps golden state dumps stable across runs. Not for production
// key management.
type KeyGen struct {
	state   [SeedSize]byte
	counter uint64
}

// NewKeyGen returns a generator seeded with the given 32 bytes.
func NewKeyGen(seed [SeedSize]byte) *KeyGen {
	return &KeyGen{state: seed}
}

// NewRandomKeyGen returns a generator with a seed drawn from the system
// CSPRNG.
func NewRandomKeyGen() (*KeyGen, error) {
	seed, err := RandomBytes(SeedSize)
	if err != nil {
		return nil, err
	}
	defer SecureErase(seed)

	var s [SeedSize]byte
	copy(s[:], seed)
	return &KeyGen{state: s}, nil
}

// Generate returns the next key pair in the sequence. The per-key seed
// is SHA3-256 over the generator state and a 64-bit counter, so keys do
// not reveal each other or the generator seed.
func (g *KeyGen) Generate() KeyPair {
	var ctr [8]byte
	binary.LittleEndian.PutUint64(ctr[:], g.counter)
	g.counter++

	material := Sha3Digest(g.state[:], ctr[:])
	kp, _ := KeyPairFromSeed(material[:])
	SecureErase(material[:])
	return kp
}

// Close wipes the generator state. Generate must not be called after Close.
func (g *KeyGen) Close() {
	SecureErase(g.state[:])
	g.counter = 0
}
