// Package protocol holds the wire-contract constants of the ledger:
// well-known account addresses, the module and struct names resources
// are stored under, recognized currency codes, and hash domain
// prefixes. Values here are fixed points that state dumps and golden
// tests depend on; changing any of them invalidates previously
// synthesized state.
package protocol

import "github.com/LeJamon/goLibra/internal/core/types"

var (
	// CoreCodeAddress is the address hosting the standard modules.
	// Every struct tag for a standard resource points here.
	CoreCodeAddress = types.MustAddressFromHex("0x1")

	// AssociationAddress is the fixed address of the association root
	// account that owns genesis state.
	AssociationAddress = types.MustAddressFromHex("0xa550c18")

	// TreasuryComplianceAddress is the fixed address of the treasury
	// compliance account, which mints and burns currency.
	TreasuryComplianceAddress = types.MustAddressFromHex("0xb1e55ed")
)

// Module and struct identifiers for the standard account resources.
const (
	AccountModuleName        types.Identifier = "LibraAccount"
	AccountStructName        types.Identifier = "LibraAccount"
	BalanceStructName        types.Identifier = "Balance"
	WithdrawCapName          types.Identifier = "WithdrawCapability"
	KeyRotationCapName       types.Identifier = "KeyRotationCapability"
	SentPaymentEventName     types.Identifier = "SentPaymentEvent"
	ReceivedPaymentEventName types.Identifier = "ReceivedPaymentEvent"

	EventModuleName       types.Identifier = "Event"
	EventHandleStructName types.Identifier = "EventHandle"
	EventGeneratorName    types.Identifier = "EventHandleGenerator"
)

// Currency codes registered at genesis. A currency's module and struct
// share its code, so the type tag for code C is 0x1::C::C.
const (
	LBR   types.Identifier = "LBR"
	Coin1 types.Identifier = "Coin1"
	Coin2 types.Identifier = "Coin2"
)

// DefaultCurrencyCode is the currency used when a fixture does not
// specify one.
const DefaultCurrencyCode = LBR

// GenesisSeed is the Ed25519 seed of the shared genesis key pair. The
// association and treasury compliance fixtures sign with keys derived
// from it, so every test environment agrees on their identities.
var GenesisSeed = [32]byte{}

// CurrencyTypeTag returns the type tag for a currency code:
// a struct tag of the form 0x1::code::code with no parameters.
func CurrencyTypeTag(code types.Identifier) types.TypeTag {
	return types.StructTypeTag(types.StructTag{
		Address: CoreCodeAddress,
		Module:  code,
		Name:    code,
	})
}

// AccountStructTag returns the struct tag of the top-level account
// resource.
func AccountStructTag() types.StructTag {
	return types.StructTag{
		Address: CoreCodeAddress,
		Module:  AccountModuleName,
		Name:    AccountStructName,
	}
}

// BalanceStructTag returns the struct tag of the balance resource for
// the given currency.
func BalanceStructTag(code types.Identifier) types.StructTag {
	return types.StructTag{
		Address:    CoreCodeAddress,
		Module:     AccountModuleName,
		Name:       BalanceStructName,
		TypeParams: []types.TypeTag{CurrencyTypeTag(code)},
	}
}

// EventGeneratorStructTag returns the struct tag of the per-account
// event handle generator resource.
func EventGeneratorStructTag() types.StructTag {
	return types.StructTag{
		Address: CoreCodeAddress,
		Module:  EventModuleName,
		Name:    EventGeneratorName,
	}
}

// SentPaymentEventTag returns the struct tag of the sent-payment event.
// Event handle layouts carry it as their type parameter.
func SentPaymentEventTag() types.StructTag {
	return types.StructTag{
		Address: CoreCodeAddress,
		Module:  AccountModuleName,
		Name:    SentPaymentEventName,
	}
}

// ReceivedPaymentEventTag returns the struct tag of the received-payment
// event.
func ReceivedPaymentEventTag() types.StructTag {
	return types.StructTag{
		Address: CoreCodeAddress,
		Module:  AccountModuleName,
		Name:    ReceivedPaymentEventName,
	}
}
