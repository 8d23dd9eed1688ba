package vm

import (
	"errors"
	"fmt"

	"github.com/LeJamon/goLibra/internal/codec/lcs"
	"github.com/LeJamon/goLibra/internal/core/types"
)

// ErrLayoutMismatch is returned when a value does not have the shape
// its layout declares. This error class is fatal for the caller: a
// blob serialized under the wrong layout would corrupt state silently,
// so nothing is emitted.
var ErrLayoutMismatch = errors.New("vm: value does not match layout")

// Serialize encodes v under layout ty and returns the canonical bytes.
// The value is validated against the layout structurally; no bytes are
// returned on any mismatch.
func Serialize(v Value, ty FatType) ([]byte, error) {
	e := lcs.NewEncoder()
	if err := EncodeValue(e, v, ty); err != nil {
		return nil, err
	}
	return e.Bytes(), nil
}

// EncodeValue appends the canonical encoding of v under ty to e.
func EncodeValue(e *lcs.Encoder, v Value, ty FatType) error {
	switch ty.Kind {
	case KindU8:
		val, ok := v.(U8)
		if !ok {
			return mismatch(v, ty)
		}
		e.WriteU8(uint8(val))
	case KindU64:
		val, ok := v.(U64)
		if !ok {
			return mismatch(v, ty)
		}
		e.WriteU64(uint64(val))
	case KindBool:
		val, ok := v.(Bool)
		if !ok {
			return mismatch(v, ty)
		}
		e.WriteBool(bool(val))
	case KindAddress:
		val, ok := v.(Address)
		if !ok {
			return mismatch(v, ty)
		}
		types.AccountAddress(val).EncodeLCS(e)
	case KindVector:
		return encodeVector(e, v, ty)
	case KindStruct:
		val, ok := v.(Struct)
		if !ok {
			return mismatch(v, ty)
		}
		return encodeStruct(e, val, ty.Struct)
	default:
		return fmt.Errorf("%w: unknown layout kind %s", ErrLayoutMismatch, ty.Kind)
	}
	return nil
}

func encodeVector(e *lcs.Encoder, v Value, ty FatType) error {
	// vector<u8> pairs with the Bytes value form.
	if ty.Elem.Kind == KindU8 {
		val, ok := v.(Bytes)
		if !ok {
			return mismatch(v, ty)
		}
		e.WriteBytes(val)
		return nil
	}

	val, ok := v.(Vector)
	if !ok {
		return mismatch(v, ty)
	}
	e.WriteLen(len(val.Elems))
	for i, elem := range val.Elems {
		if err := EncodeValue(e, elem, *ty.Elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func encodeStruct(e *lcs.Encoder, v Struct, st *FatStructType) error {
	if len(v.Fields) != len(st.Layout) {
		return fmt.Errorf("%w: struct %s::%s has %d fields, value has %d",
			ErrLayoutMismatch, st.Module, st.Name, len(st.Layout), len(v.Fields))
	}
	for i, field := range v.Fields {
		if err := EncodeValue(e, field, st.Layout[i]); err != nil {
			return fmt.Errorf("%s::%s field %d: %w", st.Module, st.Name, i, err)
		}
	}
	return nil
}

// Deserialize decodes the canonical bytes of a value with layout ty.
// Trailing bytes are an error.
func Deserialize(data []byte, ty FatType) (Value, error) {
	d := lcs.NewDecoder(data)
	v, err := DecodeValue(d, ty)
	if err != nil {
		return nil, err
	}
	if err := d.Finish(); err != nil {
		return nil, err
	}
	return v, nil
}

// DecodeValue reads one value with layout ty from d.
func DecodeValue(d *lcs.Decoder, ty FatType) (Value, error) {
	switch ty.Kind {
	case KindU8:
		v, err := d.ReadU8()
		if err != nil {
			return nil, err
		}
		return U8(v), nil
	case KindU64:
		v, err := d.ReadU64()
		if err != nil {
			return nil, err
		}
		return U64(v), nil
	case KindBool:
		v, err := d.ReadBool()
		if err != nil {
			return nil, err
		}
		return Bool(v), nil
	case KindAddress:
		addr, err := types.DecodeAddress(d)
		if err != nil {
			return nil, err
		}
		return Address(addr), nil
	case KindVector:
		if ty.Elem.Kind == KindU8 {
			b, err := d.ReadBytes()
			if err != nil {
				return nil, err
			}
			return Bytes(b), nil
		}
		n, err := d.ReadLen()
		if err != nil {
			return nil, err
		}
		elems := make([]Value, n)
		for i := 0; i < n; i++ {
			elems[i], err = DecodeValue(d, *ty.Elem)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
		}
		return Vector{Elems: elems}, nil
	case KindStruct:
		st := ty.Struct
		fields := make([]Value, len(st.Layout))
		for i, fieldTy := range st.Layout {
			v, err := DecodeValue(d, fieldTy)
			if err != nil {
				return nil, fmt.Errorf("%s::%s field %d: %w", st.Module, st.Name, i, err)
			}
			fields[i] = v
		}
		return Struct{Fields: fields}, nil
	default:
		return nil, fmt.Errorf("%w: unknown layout kind %s", ErrLayoutMismatch, ty.Kind)
	}
}

func mismatch(v Value, ty FatType) error {
	return fmt.Errorf("%w: have %T, layout wants %s", ErrLayoutMismatch, v, ty)
}
