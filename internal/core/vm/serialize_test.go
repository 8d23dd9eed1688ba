package vm

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LeJamon/goLibra/internal/codec/lcs"
	"github.com/LeJamon/goLibra/internal/core/types"
)

func mustAddr(t *testing.T, s string) types.AccountAddress {
	t.Helper()
	addr, err := types.AddressFromHex(s)
	require.NoError(t, err)
	return addr
}

func TestSerializePrimitives(t *testing.T) {
	addr := mustAddr(t, "0000000000000000000000000a550c18")

	tests := []struct {
		name  string
		value Value
		ty    FatType
		want  string
	}{
		{"u8", U8(0xab), U8Type(), "ab"},
		{"u64", U64(1_000_000), U64Type(), "40420f0000000000"},
		{"u64 zero", U64(0), U64Type(), "0000000000000000"},
		{"bool true", Bool(true), BoolType(), "01"},
		{"bool false", Bool(false), BoolType(), "00"},
		{"address", NewAddress(addr), AddressType(), "0000000000000000000000000a550c18"},
		{"byte vector", Bytes{0xca, 0xfe}, VectorType(U8Type()), "02cafe"},
		{"empty byte vector", Bytes{}, VectorType(U8Type()), "00"},
		{
			"u64 vector",
			NewVector(U64(1), U64(2)),
			VectorType(U64Type()),
			"0201000000000000000200000000000000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Serialize(tt.value, tt.ty)
			require.NoError(t, err)
			assert.Equal(t, tt.want, hex.EncodeToString(got))
		})
	}
}

func TestSerializeStruct(t *testing.T) {
	balance := &FatStructType{
		Address:    mustAddr(t, "00000000000000000000000000000001"),
		Module:     "LibraAccount",
		Name:       "Balance",
		IsResource: true,
		Layout:     []FatType{U64Type()},
	}

	got, err := Serialize(NewStruct(U64(1_000_000)), StructType(balance))
	require.NoError(t, err)
	assert.Equal(t, "40420f0000000000", hex.EncodeToString(got))
}

func TestSerializeEventHandle(t *testing.T) {
	handle := &FatStructType{
		Address:    mustAddr(t, "00000000000000000000000000000001"),
		Module:     "Event",
		Name:       "EventHandle",
		IsResource: true,
		Layout:     []FatType{U64Type(), VectorType(U8Type())},
	}

	key := make([]byte, 24)
	key[23] = 0x2a
	got, err := Serialize(NewStruct(U64(3), Bytes(key)), StructType(handle))
	require.NoError(t, err)

	want := "0300000000000000" + "18" + "00000000000000000000000000000000000000000000002a"
	assert.Equal(t, want, hex.EncodeToString(got))
}

// Capabilities live in a zero-or-one element vector of structs. Both
// arms of that encoding are load-bearing for account blobs.
func TestSerializeOptionalCapability(t *testing.T) {
	cap := &FatStructType{
		Address:    mustAddr(t, "00000000000000000000000000000001"),
		Module:     "LibraAccount",
		Name:       "WithdrawCapability",
		IsResource: true,
		Layout:     []FatType{AddressType()},
	}
	ty := VectorType(StructType(cap))

	absent, err := Serialize(NewVector(), ty)
	require.NoError(t, err)
	assert.Equal(t, "00", hex.EncodeToString(absent))

	holder := mustAddr(t, "0000000000000000000000000a550c18")
	present, err := Serialize(NewVector(NewStruct(NewAddress(holder))), ty)
	require.NoError(t, err)
	assert.Equal(t, "010000000000000000000000000a550c18", hex.EncodeToString(present))
}

func TestSerializeLayoutMismatch(t *testing.T) {
	pair := &FatStructType{
		Module: "Test",
		Name:   "Pair",
		Layout: []FatType{U64Type(), BoolType()},
	}

	tests := []struct {
		name  string
		value Value
		ty    FatType
	}{
		{"u64 against bool", U64(1), BoolType()},
		{"bool against u64", Bool(true), U64Type()},
		{"bool against vector", Bool(true), VectorType(U8Type())},
		{"general vector against byte vector", NewVector(U8(1)), VectorType(U8Type())},
		{"byte vector against u64 vector", Bytes{0x01}, VectorType(U64Type())},
		{"struct against primitive", NewStruct(U64(1)), U64Type()},
		{"too few fields", NewStruct(U64(1)), StructType(pair)},
		{"too many fields", NewStruct(U64(1), Bool(true), U8(0)), StructType(pair)},
		{"wrong field type", NewStruct(Bool(true), Bool(true)), StructType(pair)},
		{
			"wrong nested element",
			NewVector(NewStruct(Bool(true), Bool(true))),
			VectorType(StructType(pair)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Serialize(tt.value, tt.ty)
			assert.ErrorIs(t, err, ErrLayoutMismatch)
			assert.Nil(t, out)
		})
	}
}

func TestDeserialize(t *testing.T) {
	got, err := Deserialize(mustBytes(t, "40420f0000000000"), U64Type())
	require.NoError(t, err)
	assert.Equal(t, U64(1_000_000), got)

	got, err = Deserialize(mustBytes(t, "02cafe"), VectorType(U8Type()))
	require.NoError(t, err)
	assert.Equal(t, Bytes{0xca, 0xfe}, got)

	addr, err := Deserialize(
		mustBytes(t, "0000000000000000000000000a550c18"), AddressType())
	require.NoError(t, err)
	assert.Equal(t, "0000000000000000000000000a550c18",
		types.AccountAddress(addr.(Address)).Hex())
}

func TestDeserializeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		ty   FatType
		err  error
	}{
		{"trailing bytes", "0100", BoolType(), lcs.ErrTrailingBytes},
		{"truncated u64", "4042", U64Type(), lcs.ErrUnexpectedEOF},
		{"truncated vector", "02ca", VectorType(U8Type()), lcs.ErrUnexpectedEOF},
		{"invalid bool", "02", BoolType(), lcs.ErrInvalidBool},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Deserialize(mustBytes(t, tt.data), tt.ty)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

// Re-encoding a decoded value must reproduce the input bytes exactly.
func TestRoundTrip(t *testing.T) {
	handle := &FatStructType{
		Module: "Event",
		Name:   "EventHandle",
		Layout: []FatType{U64Type(), VectorType(U8Type())},
	}
	account := &FatStructType{
		Module: "Test",
		Name:   "Mixed",
		Layout: []FatType{
			VectorType(U8Type()),
			VectorType(StructType(handle)),
			U64Type(),
			BoolType(),
		},
	}

	tests := []struct {
		name  string
		value Value
		ty    FatType
	}{
		{"u8", U8(7), U8Type()},
		{"bool", Bool(true), BoolType()},
		{"bytes", Bytes{0x00, 0xff, 0x10}, VectorType(U8Type())},
		{"empty vector", NewVector(), VectorType(U64Type())},
		{
			"nested struct",
			NewStruct(
				Bytes{0xaa, 0xbb},
				NewVector(NewStruct(U64(1), Bytes(make([]byte, 24)))),
				U64(99),
				Bool(false),
			),
			StructType(account),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Serialize(tt.value, tt.ty)
			require.NoError(t, err)

			decoded, err := Deserialize(encoded, tt.ty)
			require.NoError(t, err)

			reencoded, err := Serialize(decoded, tt.ty)
			require.NoError(t, err)
			assert.Equal(t, encoded, reencoded)
		})
	}
}

func mustBytes(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}
