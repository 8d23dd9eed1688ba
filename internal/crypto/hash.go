package crypto

import "golang.org/x/crypto/sha3"

// Sha3Digest returns the SHA3-256 digest of the concatenation of parts.
// All fixed-size hashing in the protocol (authentication keys, storage
// paths, signing digests) goes through this single function.
func Sha3Digest(parts ...[]byte) [32]byte {
	h := sha3.New256()
	for _, p := range parts {
		h.Write(p)
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}
