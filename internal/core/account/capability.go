package account

import (
	"github.com/LeJamon/goLibra/internal/core/protocol"
	"github.com/LeJamon/goLibra/internal/core/types"
	"github.com/LeJamon/goLibra/internal/core/vm"
)

// Capabilities are optional resources: the account struct stores each
// one as a zero-or-one element vector, absent when the capability has
// been extracted or delegated. The aggregate models absence as a nil
// pointer and always grants both capabilities at construction time.

// WithdrawCapability grants the right to withdraw from the holder's
// balances.
type WithdrawCapability struct {
	holder types.AccountAddress
}

// NewWithdrawCapability returns the withdraw capability of holder.
func NewWithdrawCapability(holder types.AccountAddress) *WithdrawCapability {
	return &WithdrawCapability{holder: holder}
}

// Holder returns the account the capability belongs to.
func (c *WithdrawCapability) Holder() types.AccountAddress {
	return c.holder
}

// ToValue builds the capability struct value.
func (c *WithdrawCapability) ToValue() vm.Value {
	return vm.NewStruct(vm.NewAddress(c.holder))
}

// WithdrawCapabilityLayout returns the layout of the withdraw
// capability resource.
func WithdrawCapabilityLayout() *vm.FatStructType {
	return &vm.FatStructType{
		Address:    protocol.CoreCodeAddress,
		Module:     protocol.AccountModuleName,
		Name:       protocol.WithdrawCapName,
		IsResource: true,
		Layout:     []vm.FatType{vm.AddressType()},
	}
}

// KeyRotationCapability grants the right to rotate the holder's
// authentication key.
type KeyRotationCapability struct {
	holder types.AccountAddress
}

// NewKeyRotationCapability returns the key rotation capability of
// holder.
func NewKeyRotationCapability(holder types.AccountAddress) *KeyRotationCapability {
	return &KeyRotationCapability{holder: holder}
}

// Holder returns the account the capability belongs to.
func (c *KeyRotationCapability) Holder() types.AccountAddress {
	return c.holder
}

// ToValue builds the capability struct value.
func (c *KeyRotationCapability) ToValue() vm.Value {
	return vm.NewStruct(vm.NewAddress(c.holder))
}

// KeyRotationCapabilityLayout returns the layout of the key rotation
// capability resource.
func KeyRotationCapabilityLayout() *vm.FatStructType {
	return &vm.FatStructType{
		Address:    protocol.CoreCodeAddress,
		Module:     protocol.AccountModuleName,
		Name:       protocol.KeyRotationCapName,
		IsResource: true,
		Layout:     []vm.FatType{vm.AddressType()},
	}
}
