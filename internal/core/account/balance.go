package account

import (
	"github.com/LeJamon/goLibra/internal/core/protocol"
	"github.com/LeJamon/goLibra/internal/core/vm"
)

// Balance is the coin amount an account holds in one currency. The
// currency code is not part of the resource; it lives in the storage
// path's struct tag.
type Balance struct {
	coin uint64
}

// NewBalance returns a balance holding the given amount.
func NewBalance(coin uint64) Balance {
	return Balance{coin: coin}
}

// Coin returns the coin amount.
func (b Balance) Coin() uint64 {
	return b.coin
}

// ToValue builds the balance resource value in field order.
func (b Balance) ToValue() vm.Value {
	return vm.NewStruct(vm.U64(b.coin))
}

// BalanceLayout returns the layout of the balance resource. The layout
// is the same for every currency; only the storage path's struct tag
// carries the currency parameter.
func BalanceLayout() *vm.FatStructType {
	return &vm.FatStructType{
		Address:    protocol.CoreCodeAddress,
		Module:     protocol.AccountModuleName,
		Name:       protocol.BalanceStructName,
		IsResource: true,
		Layout:     []vm.FatType{vm.U64Type()},
	}
}
