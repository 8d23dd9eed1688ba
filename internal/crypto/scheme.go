// Package crypto provides the cryptographic identity operations for
// ledger accounts: Ed25519 key pairs, authentication key derivation,
// deterministic key generation for fixtures, and signing digests.
package crypto

// Scheme identifies the signature scheme of an authentication key.
// The scheme byte is appended to the public key before hashing, so the
// values are part of the wire contract and must never change.
type Scheme uint8

const (
	// SchemeEd25519 is a single Ed25519 key.
	SchemeEd25519 Scheme = 0x00
	// SchemeMultiEd25519 is a K-of-N Ed25519 multisig key. Reserved;
	// fixture accounts are always single-key.
	SchemeMultiEd25519 Scheme = 0x01
)

// String returns the string representation of the scheme.
func (s Scheme) String() string {
	switch s {
	case SchemeEd25519:
		return "ed25519"
	case SchemeMultiEd25519:
		return "multi-ed25519"
	default:
		return "unknown"
	}
}
