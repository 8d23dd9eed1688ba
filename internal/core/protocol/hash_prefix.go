package protocol

// HashPrefix defines the prefix bytes used in hashing operations.
// These prefixes provide domain separation for different hash contexts:
// a digest computed for one purpose can never collide with a digest
// computed for another.
type HashPrefix [4]byte

var (
	// HashPrefixRawTransaction is used for transaction signing digests
	HashPrefixRawTransaction = HashPrefix{'R', 'T', 'X', 0x00}

	// HashPrefixSignedTransaction is used for computing transaction IDs
	HashPrefixSignedTransaction = HashPrefix{'S', 'T', 'X', 0x00}

	// HashPrefixWriteSet is used for hashing frozen write-sets
	HashPrefixWriteSet = HashPrefix{'W', 'S', 'T', 0x00}

	// HashPrefixStateValue is used for hashing stored resource blobs
	HashPrefixStateValue = HashPrefix{'S', 'V', 'L', 0x00}

	// HashPrefixEvent is used for hashing emitted events
	HashPrefixEvent = HashPrefix{'E', 'V', 'T', 0x00}
)

// Bytes returns the prefix as a byte slice
func (h HashPrefix) Bytes() []byte {
	return h[:]
}
