package types

import (
	"fmt"
	"strings"

	"github.com/LeJamon/goLibra/internal/codec/lcs"
	"github.com/LeJamon/goLibra/internal/crypto"
)

// TypeTagKind discriminates TypeTag variants. The numeric values are
// the serialized variant indices and must never change.
type TypeTagKind uint8

const (
	TagBool    TypeTagKind = 0
	TagU8      TypeTagKind = 1
	TagU64     TypeTagKind = 2
	TagU128    TypeTagKind = 3
	TagAddress TypeTagKind = 4
	TagVector  TypeTagKind = 5
	TagStruct  TypeTagKind = 6
)

// String returns the string representation of the kind.
func (k TypeTagKind) String() string {
	switch k {
	case TagBool:
		return "bool"
	case TagU8:
		return "u8"
	case TagU64:
		return "u64"
	case TagU128:
		return "u128"
	case TagAddress:
		return "address"
	case TagVector:
		return "vector"
	case TagStruct:
		return "struct"
	default:
		return fmt.Sprintf("TypeTagKind(%d)", uint8(k))
	}
}

// TypeTag names a runtime type: a primitive, a vector, or a struct
// instantiation. Tags parameterize scripts and struct tags; generic
// resources such as per-currency balances use them to distinguish
// instantiations.
type TypeTag struct {
	Kind TypeTagKind

	// Elem is set when Kind is TagVector.
	Elem *TypeTag
	// Struct is set when Kind is TagStruct.
	Struct *StructTag
}

// BoolTag returns the bool type tag.
func BoolTag() TypeTag { return TypeTag{Kind: TagBool} }

// U8Tag returns the u8 type tag.
func U8Tag() TypeTag { return TypeTag{Kind: TagU8} }

// U64Tag returns the u64 type tag.
func U64Tag() TypeTag { return TypeTag{Kind: TagU64} }

// U128Tag returns the u128 type tag.
func U128Tag() TypeTag { return TypeTag{Kind: TagU128} }

// AddressTag returns the address type tag.
func AddressTag() TypeTag { return TypeTag{Kind: TagAddress} }

// VectorTag returns the tag for a vector of elem.
func VectorTag(elem TypeTag) TypeTag {
	return TypeTag{Kind: TagVector, Elem: &elem}
}

// StructTypeTag returns the tag for a struct instantiation.
func StructTypeTag(st StructTag) TypeTag {
	return TypeTag{Kind: TagStruct, Struct: &st}
}

// String renders the tag in source-like notation, e.g.
// "vector<u8>" or "0...01::LibraAccount::Balance<0...01::LBR::LBR>".
func (t TypeTag) String() string {
	switch t.Kind {
	case TagVector:
		return "vector<" + t.Elem.String() + ">"
	case TagStruct:
		return t.Struct.String()
	default:
		return t.Kind.String()
	}
}

// EncodeLCS writes the variant index followed by the variant body.
func (t TypeTag) EncodeLCS(e *lcs.Encoder) {
	e.WriteVariant(uint32(t.Kind))
	switch t.Kind {
	case TagVector:
		t.Elem.EncodeLCS(e)
	case TagStruct:
		t.Struct.EncodeLCS(e)
	}
}

// StructTag fully names a struct instantiation: the address and module
// that declare it, the struct name, and any type parameters. Two
// resources stored under the same account are distinguished exactly by
// their struct tags.
type StructTag struct {
	Address    AccountAddress
	Module     Identifier
	Name       Identifier
	TypeParams []TypeTag
}

// String renders the tag as address::Module::Name<params>.
func (st StructTag) String() string {
	var b strings.Builder
	b.WriteString("0x")
	b.WriteString(st.Address.Hex())
	b.WriteString("::")
	b.WriteString(string(st.Module))
	b.WriteString("::")
	b.WriteString(string(st.Name))
	if len(st.TypeParams) > 0 {
		b.WriteString("<")
		for i, tp := range st.TypeParams {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(tp.String())
		}
		b.WriteString(">")
	}
	return b.String()
}

// EncodeLCS writes the canonical form: address, module, name, then the
// type parameter sequence.
func (st StructTag) EncodeLCS(e *lcs.Encoder) {
	st.Address.EncodeLCS(e)
	st.Module.EncodeLCS(e)
	st.Name.EncodeLCS(e)
	e.WriteLen(len(st.TypeParams))
	for _, tp := range st.TypeParams {
		tp.EncodeLCS(e)
	}
}

// Hash returns the SHA3-256 digest of the canonical tag bytes. Storage
// paths embed this digest, which is what guarantees that distinct
// (address, type) pairs occupy distinct paths.
func (st StructTag) Hash() [32]byte {
	e := lcs.NewEncoder()
	st.EncodeLCS(e)
	return crypto.Sha3Digest(e.Bytes())
}
