package vm

import (
	"fmt"

	"github.com/LeJamon/goLibra/internal/core/types"
)

// TypeKind discriminates FatType variants.
type TypeKind uint8

const (
	KindU8 TypeKind = iota
	KindU64
	KindBool
	KindAddress
	KindVector
	KindStruct
)

// String returns the string representation of the kind.
func (k TypeKind) String() string {
	switch k {
	case KindU8:
		return "u8"
	case KindU64:
		return "u64"
	case KindBool:
		return "bool"
	case KindAddress:
		return "address"
	case KindVector:
		return "vector"
	case KindStruct:
		return "struct"
	default:
		return fmt.Sprintf("TypeKind(%d)", uint8(k))
	}
}

// FatType is a fully resolved layout descriptor. Layouts are derivable
// from type definitions alone, without a value in hand, which is what
// lets schema tests lock the wire format independently of any fixture.
type FatType struct {
	Kind TypeKind

	// Elem is set when Kind is KindVector.
	Elem *FatType
	// Struct is set when Kind is KindStruct.
	Struct *FatStructType
}

// U8Type returns the u8 layout.
func U8Type() FatType { return FatType{Kind: KindU8} }

// U64Type returns the u64 layout.
func U64Type() FatType { return FatType{Kind: KindU64} }

// BoolType returns the bool layout.
func BoolType() FatType { return FatType{Kind: KindBool} }

// AddressType returns the address layout.
func AddressType() FatType { return FatType{Kind: KindAddress} }

// VectorType returns the layout of a vector of elem.
func VectorType(elem FatType) FatType {
	return FatType{Kind: KindVector, Elem: &elem}
}

// StructType returns the layout of a struct instantiation.
func StructType(st *FatStructType) FatType {
	return FatType{Kind: KindStruct, Struct: st}
}

// String renders the layout in source-like notation.
func (t FatType) String() string {
	switch t.Kind {
	case KindVector:
		return "vector<" + t.Elem.String() + ">"
	case KindStruct:
		return string(t.Struct.Module) + "::" + string(t.Struct.Name)
	default:
		return t.Kind.String()
	}
}

// FatStructType names a struct and gives the layout of its fields in
// declaration order.
type FatStructType struct {
	Address    types.AccountAddress
	Module     types.Identifier
	Name       types.Identifier
	IsResource bool
	TypeParams []types.TypeTag
	Layout     []FatType
}

// StructTag returns the storage tag for this struct. Resource access
// paths hash this tag.
func (st *FatStructType) StructTag() types.StructTag {
	params := make([]types.TypeTag, len(st.TypeParams))
	copy(params, st.TypeParams)
	return types.StructTag{
		Address:    st.Address,
		Module:     st.Module,
		Name:       st.Name,
		TypeParams: params,
	}
}

// FieldCount returns the number of fields in the layout.
func (st *FatStructType) FieldCount() int {
	return len(st.Layout)
}
