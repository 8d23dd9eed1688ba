package tx

import (
	"encoding/hex"
	"fmt"

	"github.com/LeJamon/goLibra/internal/codec/lcs"
	"github.com/LeJamon/goLibra/internal/core/types"
)

// ArgumentKind discriminates transaction argument variants. The
// numeric values are the serialized variant indices and must never
// change.
type ArgumentKind uint8

const (
	ArgU64      ArgumentKind = 0
	ArgAddress  ArgumentKind = 1
	ArgU8Vector ArgumentKind = 2
	ArgBool     ArgumentKind = 3
)

// String returns the string representation of the kind.
func (k ArgumentKind) String() string {
	switch k {
	case ArgU64:
		return "u64"
	case ArgAddress:
		return "address"
	case ArgU8Vector:
		return "u8vector"
	case ArgBool:
		return "bool"
	default:
		return fmt.Sprintf("ArgumentKind(%d)", uint8(k))
	}
}

// TransactionArgument is one value argument of a script.
type TransactionArgument struct {
	Kind    ArgumentKind
	U64     uint64
	Address types.AccountAddress
	Bytes   []byte
	Bool    bool
}

// U64Argument wraps an unsigned integer argument.
func U64Argument(v uint64) TransactionArgument {
	return TransactionArgument{Kind: ArgU64, U64: v}
}

// AddressArgument wraps an address argument.
func AddressArgument(a types.AccountAddress) TransactionArgument {
	return TransactionArgument{Kind: ArgAddress, Address: a}
}

// U8VectorArgument wraps a byte-vector argument.
func U8VectorArgument(b []byte) TransactionArgument {
	return TransactionArgument{Kind: ArgU8Vector, Bytes: b}
}

// BoolArgument wraps a boolean argument.
func BoolArgument(v bool) TransactionArgument {
	return TransactionArgument{Kind: ArgBool, Bool: v}
}

// EncodeLCS writes the variant index followed by the variant body.
func (a TransactionArgument) EncodeLCS(e *lcs.Encoder) {
	e.WriteVariant(uint32(a.Kind))
	switch a.Kind {
	case ArgU64:
		e.WriteU64(a.U64)
	case ArgAddress:
		a.Address.EncodeLCS(e)
	case ArgU8Vector:
		e.WriteBytes(a.Bytes)
	case ArgBool:
		e.WriteBool(a.Bool)
	}
}

// String renders the argument for diagnostics.
func (a TransactionArgument) String() string {
	switch a.Kind {
	case ArgU64:
		return fmt.Sprintf("u64(%d)", a.U64)
	case ArgAddress:
		return fmt.Sprintf("address(%s)", a.Address.Hex())
	case ArgU8Vector:
		return "u8vector(0x" + hex.EncodeToString(a.Bytes) + ")"
	case ArgBool:
		return fmt.Sprintf("bool(%t)", a.Bool)
	default:
		return a.Kind.String()
	}
}
