// Package vm models runtime resource values and their memory layouts.
// A Value carries data only; a FatType describes the shape that data
// must have on the wire. Serialization always takes both, validates one
// against the other, and fails closed on any mismatch rather than
// emitting bytes the ledger would misread.
package vm

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/LeJamon/goLibra/internal/core/types"
)

// Value is a runtime value. The concrete types are U8, U64, Bool,
// Address, Bytes, Vector, and Struct.
type Value interface {
	isValue()
	String() string
}

// U8 is a single byte value.
type U8 uint8

// U64 is an unsigned 64-bit integer value.
type U64 uint64

// Bool is a boolean value.
type Bool bool

// Address is an account address value.
type Address types.AccountAddress

// Bytes is a byte-vector value. It is the value form of vector<u8>.
type Bytes []byte

// Vector is a general vector value. Byte vectors use Bytes instead.
type Vector struct {
	Elems []Value
}

// Struct is an ordered list of field values. Field names live in the
// layout's declaring type, not in the value.
type Struct struct {
	Fields []Value
}

func (U8) isValue()      {}
func (U64) isValue()     {}
func (Bool) isValue()    {}
func (Address) isValue() {}
func (Bytes) isValue()   {}
func (Vector) isValue()  {}
func (Struct) isValue()  {}

// NewVector builds a general vector value.
func NewVector(elems ...Value) Vector {
	return Vector{Elems: elems}
}

// NewStruct builds a struct value from its fields in declaration order.
func NewStruct(fields ...Value) Struct {
	return Struct{Fields: fields}
}

// NewAddress wraps an account address as a value.
func NewAddress(a types.AccountAddress) Address {
	return Address(a)
}

func (v U8) String() string   { return fmt.Sprintf("%du8", uint8(v)) }
func (v U64) String() string  { return fmt.Sprintf("%d", uint64(v)) }
func (v Bool) String() string { return fmt.Sprintf("%t", bool(v)) }

func (v Address) String() string {
	return types.AccountAddress(v).Hex()
}

func (v Bytes) String() string {
	return "0x" + hex.EncodeToString(v)
}

func (v Vector) String() string {
	parts := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (v Struct) String() string {
	parts := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		parts[i] = f.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// ToInterface converts a value into plain Go data for JSON rendering:
// numbers, booleans, hex strings, and nested slices.
func ToInterface(v Value) any {
	switch val := v.(type) {
	case U8:
		return uint8(val)
	case U64:
		return uint64(val)
	case Bool:
		return bool(val)
	case Address:
		return types.AccountAddress(val).Hex()
	case Bytes:
		return hex.EncodeToString(val)
	case Vector:
		out := make([]any, len(val.Elems))
		for i, e := range val.Elems {
			out[i] = ToInterface(e)
		}
		return out
	case Struct:
		out := make([]any, len(val.Fields))
		for i, f := range val.Fields {
			out[i] = ToInterface(f)
		}
		return out
	default:
		return nil
	}
}
