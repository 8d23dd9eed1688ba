// Package lcs implements the Libra Canonical Serialization format.
// LCS is a deterministic binary format: fixed-width integers are
// little-endian, lengths and enum variant indices use ULEB128, and
// struct fields are concatenated in declaration order with no framing.
// Every value has exactly one valid encoding, which is what makes the
// format usable for signing and for byte-level state comparison.
package lcs

import "errors"

var (
	// ErrUnexpectedEOF is returned when the input ends mid-value.
	ErrUnexpectedEOF = errors.New("lcs: unexpected end of input")
	// ErrNonCanonical is returned when a ULEB128 value uses more bytes
	// than necessary. Canonical form is required so that decode(encode(x))
	// is the identity and byte comparison is meaningful.
	ErrNonCanonical = errors.New("lcs: non-canonical ULEB128 encoding")
	// ErrLengthOverflow is returned when a declared length exceeds the
	// 32-bit limit or the remaining input.
	ErrLengthOverflow = errors.New("lcs: length exceeds limit")
	// ErrInvalidBool is returned for boolean bytes other than 0 or 1.
	ErrInvalidBool = errors.New("lcs: invalid boolean byte")
	// ErrTrailingBytes is returned by top-level decoders when input
	// remains after the value has been fully read.
	ErrTrailingBytes = errors.New("lcs: trailing bytes after value")
)

// MaxSequenceLength bounds ULEB128-encoded lengths and variant indices.
// Matches the format's u32 limit.
const MaxSequenceLength = 1<<31 - 1
