package lcs

import (
	"bytes"
	"encoding/binary"
)

// Encoder accumulates an LCS byte stream. The zero value is not usable;
// construct with NewEncoder. Write methods never fail; Bytes returns the
// accumulated output.
type Encoder struct {
	buf bytes.Buffer
}

// NewEncoder returns an empty encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Bytes returns the encoded output accumulated so far.
func (e *Encoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of bytes written so far.
func (e *Encoder) Len() int {
	return e.buf.Len()
}

// WriteU8 writes a single byte.
func (e *Encoder) WriteU8(v uint8) {
	e.buf.WriteByte(v)
}

// WriteU16 writes a 16-bit integer, little-endian.
func (e *Encoder) WriteU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	e.buf.Write(b[:])
}

// WriteU32 writes a 32-bit integer, little-endian.
func (e *Encoder) WriteU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	e.buf.Write(b[:])
}

// WriteU64 writes a 64-bit integer, little-endian.
func (e *Encoder) WriteU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	e.buf.Write(b[:])
}

// WriteBool writes a boolean as a single 0x00 or 0x01 byte.
func (e *Encoder) WriteBool(v bool) {
	if v {
		e.buf.WriteByte(1)
	} else {
		e.buf.WriteByte(0)
	}
}

// WriteULEB128 writes an unsigned integer in ULEB128 form. The encoding
// is minimal: the high bit of each byte marks continuation and the final
// byte is never zero unless the value itself is zero.
func (e *Encoder) WriteULEB128(v uint64) {
	for v >= 0x80 {
		e.buf.WriteByte(byte(v&0x7f) | 0x80)
		v >>= 7
	}
	e.buf.WriteByte(byte(v))
}

// WriteLen writes a sequence length.
func (e *Encoder) WriteLen(n int) {
	e.WriteULEB128(uint64(n))
}

// WriteVariant writes an enum variant index.
func (e *Encoder) WriteVariant(idx uint32) {
	e.WriteULEB128(uint64(idx))
}

// WriteBytes writes a length-prefixed byte string.
func (e *Encoder) WriteBytes(b []byte) {
	e.WriteLen(len(b))
	e.buf.Write(b)
}

// WriteString writes a length-prefixed UTF-8 string.
func (e *Encoder) WriteString(s string) {
	e.WriteLen(len(s))
	e.buf.WriteString(s)
}

// WriteFixedBytes writes raw bytes with no length prefix. Used for
// fields whose width is fixed by the schema, such as account addresses.
func (e *Encoder) WriteFixedBytes(b []byte) {
	e.buf.Write(b)
}
