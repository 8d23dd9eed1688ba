package lcs

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestULEB128Vectors(t *testing.T) {
	// Boundary values around each 7-bit group.
	tests := []struct {
		name    string
		value   uint64
		encoded string
	}{
		{"zero", 0, "00"},
		{"one", 1, "01"},
		{"max single byte", 127, "7f"},
		{"first two byte", 128, "8001"},
		{"two byte", 300, "ac02"},
		{"max two byte", 16383, "ff7f"},
		{"first three byte", 16384, "808001"},
		{"u32 max", 4294967295, "ffffffff0f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEncoder()
			e.WriteULEB128(tt.value)
			assert.Equal(t, tt.encoded, hex.EncodeToString(e.Bytes()))

			d := NewDecoder(e.Bytes())
			got, err := d.ReadULEB128()
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
			assert.NoError(t, d.Finish())
		})
	}
}

func TestULEB128RejectsNonCanonical(t *testing.T) {
	// 0x80 0x00 encodes zero with a padding byte. A conforming decoder
	// must refuse it, otherwise two byte strings decode to one value.
	tests := []struct {
		name  string
		input string
	}{
		{"padded zero", "8000"},
		{"padded one", "8100"},
		{"padded 127", "ff00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := hex.DecodeString(tt.input)
			require.NoError(t, err)

			_, err = NewDecoder(raw).ReadULEB128()
			assert.ErrorIs(t, err, ErrNonCanonical)
		})
	}
}

func TestIntegerVectors(t *testing.T) {
	e := NewEncoder()
	e.WriteU8(0xab)
	e.WriteU16(0x1234)
	e.WriteU32(0xdeadbeef)
	e.WriteU64(1000000)

	// Fixed-width integers are little-endian.
	assert.Equal(t, "ab3412efbeadde40420f0000000000", hex.EncodeToString(e.Bytes()))

	d := NewDecoder(e.Bytes())
	u8, err := d.ReadU8()
	require.NoError(t, err)
	assert.Equal(t, uint8(0xab), u8)
	u16, err := d.ReadU16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), u16)
	u32, err := d.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xdeadbeef), u32)
	u64, err := d.ReadU64()
	require.NoError(t, err)
	assert.Equal(t, uint64(1000000), u64)
	assert.NoError(t, d.Finish())
}

func TestBoolStrictness(t *testing.T) {
	e := NewEncoder()
	e.WriteBool(true)
	e.WriteBool(false)
	assert.Equal(t, "0100", hex.EncodeToString(e.Bytes()))

	t.Run("valid bytes round-trip", func(t *testing.T) {
		d := NewDecoder(e.Bytes())
		v, err := d.ReadBool()
		require.NoError(t, err)
		assert.True(t, v)
		v, err = d.ReadBool()
		require.NoError(t, err)
		assert.False(t, v)
	})

	t.Run("other bytes rejected", func(t *testing.T) {
		_, err := NewDecoder([]byte{0x02}).ReadBool()
		assert.ErrorIs(t, err, ErrInvalidBool)
	})
}

func TestBytesAndString(t *testing.T) {
	tests := []struct {
		name    string
		input   []byte
		encoded string
	}{
		{"empty", nil, "00"},
		{"short", []byte{0xca, 0xfe}, "02cafe"},
		{"ascii", []byte("LBR"), "034c4252"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEncoder()
			e.WriteBytes(tt.input)
			assert.Equal(t, tt.encoded, hex.EncodeToString(e.Bytes()))

			d := NewDecoder(e.Bytes())
			got, err := d.ReadBytes()
			require.NoError(t, err)
			assert.Equal(t, append([]byte{}, tt.input...), got)
		})
	}

	t.Run("string helper matches bytes form", func(t *testing.T) {
		e := NewEncoder()
		e.WriteString("LBR")
		assert.Equal(t, "034c4252", hex.EncodeToString(e.Bytes()))

		s, err := NewDecoder(e.Bytes()).ReadString()
		require.NoError(t, err)
		assert.Equal(t, "LBR", s)
	})
}

func TestDecoderTruncation(t *testing.T) {
	t.Run("fixed width", func(t *testing.T) {
		_, err := NewDecoder([]byte{0x01, 0x02}).ReadU64()
		assert.ErrorIs(t, err, ErrUnexpectedEOF)
	})

	t.Run("declared length exceeds input", func(t *testing.T) {
		// Length 5 followed by 2 bytes.
		_, err := NewDecoder([]byte{0x05, 0xaa, 0xbb}).ReadBytes()
		assert.ErrorIs(t, err, ErrUnexpectedEOF)
	})

	t.Run("trailing bytes detected", func(t *testing.T) {
		d := NewDecoder([]byte{0x01, 0xff})
		_, err := d.ReadU8()
		require.NoError(t, err)
		assert.ErrorIs(t, d.Finish(), ErrTrailingBytes)
	})
}

func TestFixedBytes(t *testing.T) {
	addr := make([]byte, 16)
	for i := range addr {
		addr[i] = byte(i)
	}

	e := NewEncoder()
	e.WriteFixedBytes(addr)
	// No length prefix.
	assert.Equal(t, 16, e.Len())

	d := NewDecoder(e.Bytes())
	got, err := d.ReadFixedBytes(16)
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	// The returned slice is a copy, not a view.
	got[0] = 0xff
	assert.Equal(t, byte(0x00), e.Bytes()[0])
}
