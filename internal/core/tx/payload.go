package tx

import (
	"fmt"

	"github.com/LeJamon/goLibra/internal/codec/lcs"
	"github.com/LeJamon/goLibra/internal/core/types"
)

// Script is compiled program code plus its type and value arguments.
type Script struct {
	Code   []byte
	TyArgs []types.TypeTag
	Args   []TransactionArgument
}

// NewScript builds a script payload body.
func NewScript(code []byte, tyArgs []types.TypeTag, args []TransactionArgument) Script {
	return Script{Code: code, TyArgs: tyArgs, Args: args}
}

// EncodeLCS writes the code bytes, the type argument sequence, and the
// value argument sequence.
func (s Script) EncodeLCS(e *lcs.Encoder) {
	e.WriteBytes(s.Code)
	e.WriteLen(len(s.TyArgs))
	for _, ta := range s.TyArgs {
		ta.EncodeLCS(e)
	}
	e.WriteLen(len(s.Args))
	for _, a := range s.Args {
		a.EncodeLCS(e)
	}
}

// Module is compiled module code for publishing.
type Module struct {
	Code []byte
}

// NewModule builds a module payload body.
func NewModule(code []byte) Module {
	return Module{Code: code}
}

// EncodeLCS writes the code bytes.
func (m Module) EncodeLCS(e *lcs.Encoder) {
	e.WriteBytes(m.Code)
}

// PayloadKind discriminates payload variants. The numeric values are
// the serialized variant indices and must never change.
type PayloadKind uint8

const (
	PayloadWriteSet PayloadKind = 0
	PayloadScript   PayloadKind = 1
	PayloadModule   PayloadKind = 2
)

// String returns the string representation of the kind.
func (k PayloadKind) String() string {
	switch k {
	case PayloadWriteSet:
		return "WriteSet"
	case PayloadScript:
		return "Script"
	case PayloadModule:
		return "Module"
	default:
		return fmt.Sprintf("PayloadKind(%d)", uint8(k))
	}
}

// Payload is what a transaction executes: a script, a module to
// publish, or a write-set applied directly without execution.
type Payload struct {
	Kind     PayloadKind
	WriteSet types.WriteSet
	Script   Script
	Module   Module
}

// NewWriteSetPayload wraps a write-set as a payload.
func NewWriteSetPayload(ws types.WriteSet) Payload {
	return Payload{Kind: PayloadWriteSet, WriteSet: ws}
}

// NewScriptPayload wraps a script as a payload.
func NewScriptPayload(s Script) Payload {
	return Payload{Kind: PayloadScript, Script: s}
}

// NewModulePayload wraps a module as a payload.
func NewModulePayload(m Module) Payload {
	return Payload{Kind: PayloadModule, Module: m}
}

// EncodeLCS writes the variant index followed by the variant body.
func (p Payload) EncodeLCS(e *lcs.Encoder) {
	e.WriteVariant(uint32(p.Kind))
	switch p.Kind {
	case PayloadWriteSet:
		p.WriteSet.EncodeLCS(e)
	case PayloadScript:
		p.Script.EncodeLCS(e)
	case PayloadModule:
		p.Module.EncodeLCS(e)
	}
}
