package lcs

import "encoding/binary"

// Decoder reads an LCS byte stream. It rejects non-canonical ULEB128
// encodings and truncated input so that only byte strings produced by a
// conforming encoder decode successfully.
type Decoder struct {
	data []byte
	pos  int
}

// NewDecoder returns a decoder over data. The decoder does not copy the
// slice; callers must not mutate it while decoding.
func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int {
	return len(d.data) - d.pos
}

// Finish returns ErrTrailingBytes if any input remains unread.
func (d *Decoder) Finish() error {
	if d.Remaining() != 0 {
		return ErrTrailingBytes
	}
	return nil
}

func (d *Decoder) take(n int) ([]byte, error) {
	if d.Remaining() < n {
		return nil, ErrUnexpectedEOF
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

// ReadU8 reads a single byte.
func (d *Decoder) ReadU8() (uint8, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadU16 reads a 16-bit little-endian integer.
func (d *Decoder) ReadU16() (uint16, error) {
	b, err := d.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadU32 reads a 32-bit little-endian integer.
func (d *Decoder) ReadU32() (uint32, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadU64 reads a 64-bit little-endian integer.
func (d *Decoder) ReadU64() (uint64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadBool reads a strict boolean byte.
func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.ReadU8()
	if err != nil {
		return false, err
	}
	switch b {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, ErrInvalidBool
	}
}

// ReadULEB128 reads a canonically encoded ULEB128 integer.
func (d *Decoder) ReadULEB128() (uint64, error) {
	var v uint64
	var shift uint
	for {
		b, err := d.ReadU8()
		if err != nil {
			return 0, err
		}
		if shift == 63 && b > 1 {
			return 0, ErrLengthOverflow
		}
		v |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			// Reject padded encodings such as 0x80 0x00.
			if b == 0 && shift != 0 {
				return 0, ErrNonCanonical
			}
			return v, nil
		}
		shift += 7
		if shift > 63 {
			return 0, ErrLengthOverflow
		}
	}
}

// ReadLen reads a sequence length and bounds-checks it against both the
// format limit and the remaining input.
func (d *Decoder) ReadLen() (int, error) {
	v, err := d.ReadULEB128()
	if err != nil {
		return 0, err
	}
	if v > MaxSequenceLength {
		return 0, ErrLengthOverflow
	}
	return int(v), nil
}

// ReadVariant reads an enum variant index.
func (d *Decoder) ReadVariant() (uint32, error) {
	v, err := d.ReadULEB128()
	if err != nil {
		return 0, err
	}
	if v > MaxSequenceLength {
		return 0, ErrLengthOverflow
	}
	return uint32(v), nil
}

// ReadBytes reads a length-prefixed byte string. The result is a copy.
func (d *Decoder) ReadBytes() ([]byte, error) {
	n, err := d.ReadLen()
	if err != nil {
		return nil, err
	}
	b, err := d.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}

// ReadString reads a length-prefixed UTF-8 string.
func (d *Decoder) ReadString() (string, error) {
	b, err := d.ReadBytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadFixedBytes reads exactly n raw bytes. The result is a copy.
func (d *Decoder) ReadFixedBytes(n int) ([]byte, error) {
	b, err := d.take(n)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, b)
	return out, nil
}
