package account

import (
	"errors"
	"fmt"
	"sort"

	"github.com/LeJamon/goLibra/internal/core/protocol"
	"github.com/LeJamon/goLibra/internal/core/types"
	"github.com/LeJamon/goLibra/internal/core/vm"
	"github.com/LeJamon/goLibra/internal/crypto"
)

var (
	// ErrDuplicateCurrency is returned when adding a balance for a
	// currency the account already holds.
	ErrDuplicateCurrency = errors.New("balance already exists for currency")
	// ErrBalanceNotFound is returned when reading a balance for a
	// currency the account never added.
	ErrBalanceNotFound = errors.New("no balance for currency")
)

// AccountData is one complete account snapshot: identity, balances,
// event streams, capabilities, and bookkeeping fields. It is a
// transient in-memory fixture; its destiny is either ToWriteSet for
// injection into storage or IntoAccount for transaction building.
// Instances are not safe for concurrent mutation; give each test its
// own.
type AccountData struct {
	account        Account
	withdrawCap    *WithdrawCapability
	keyRotationCap *KeyRotationCapability
	sequenceNumber uint64
	sentEvents     EventHandle
	receivedEvents EventHandle
	frozen         bool
	balances       map[types.Identifier]Balance
	eventGenerator *EventHandleGenerator
	role           AccountRole
}

// NewData creates a parent VASP account with a fresh random identity,
// the given balance in the default currency, and the given sequence
// number.
func NewData(balance, sequenceNumber uint64) (*AccountData, error) {
	acc, err := New()
	if err != nil {
		return nil, err
	}
	return NewDataWithAccount(acc, balance, protocol.DefaultCurrencyCode,
		sequenceNumber, RoleParentVASP), nil
}

// NewAssocRootData creates the association root account: well-known
// address, genesis keypair, zero balance, sequence number zero.
func NewAssocRootData() *AccountData {
	return NewDataWithAccount(NewAssociation(), 0, protocol.DefaultCurrencyCode,
		0, RoleAssocRoot)
}

// NewUnhostedData creates an unhosted account with a fresh random
// identity, zero balance, and sequence number zero.
func NewUnhostedData() (*AccountData, error) {
	acc, err := New()
	if err != nil {
		return nil, err
	}
	return NewDataWithAccount(acc, 0, protocol.DefaultCurrencyCode,
		0, RoleUnhosted), nil
}

// NewDataWithKeyPair creates an account snapshot around an existing
// keypair.
func NewDataWithKeyPair(kp crypto.KeyPair, balance uint64, code types.Identifier,
	sequenceNumber uint64, role RoleSpecifier) *AccountData {
	return NewDataWithAccount(WithKeyPair(kp), balance, code, sequenceNumber, role)
}

// NewDataWithAccount creates an account snapshot around an existing
// identity with zero event counts and the frozen flag clear.
func NewDataWithAccount(acc Account, balance uint64, code types.Identifier,
	sequenceNumber uint64, role RoleSpecifier) *AccountData {
	return NewDataWithEventCounts(acc, balance, code, sequenceNumber, 0, 0, role, false)
}

// NewDataWithEventCounts creates a fully custom account snapshot. The
// sent and received event streams get keys derived from the account's
// event generator (received first, then sent, matching on-chain
// creation order), so the snapshot is fully reproducible from the
// keypair. The generator's counter ends at two, which is the value the
// serialized resource carries.
func NewDataWithEventCounts(acc Account, balance uint64, code types.Identifier,
	sequenceNumber, sentCount, receivedCount uint64,
	role RoleSpecifier, frozen bool) *AccountData {
	addr := acc.Address()

	gen := NewEventHandleGenerator(addr)
	received := NewEventHandle(gen.NewHandle().Key(), receivedCount)
	sent := NewEventHandle(gen.NewHandle().Key(), sentCount)

	return &AccountData{
		account:        acc,
		withdrawCap:    NewWithdrawCapability(addr),
		keyRotationCap: NewKeyRotationCapability(addr),
		sequenceNumber: sequenceNumber,
		sentEvents:     sent,
		receivedEvents: received,
		frozen:         frozen,
		balances:       map[types.Identifier]Balance{code: NewBalance(balance)},
		eventGenerator: gen,
		role:           NewAccountRole(addr, role),
	}
}

// AddBalanceCurrency registers a zero balance under a new currency
// code. Adding a currency the account already holds is an error, never
// a silent overwrite.
func (d *AccountData) AddBalanceCurrency(code types.Identifier) error {
	if _, ok := d.balances[code]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateCurrency, code)
	}
	d.balances[code] = NewBalance(0)
	return nil
}

// RotateKey replaces the identity's keypair. The address, and with it
// every storage path, stays fixed.
func (d *AccountData) RotateKey(kp crypto.KeyPair) {
	d.account.RotateKey(kp)
}

// Account returns the underlying identity.
func (d *AccountData) Account() Account {
	return d.account
}

// IntoAccount consumes the snapshot and returns the bare identity. The
// snapshot must not be used afterwards.
func (d *AccountData) IntoAccount() Account {
	return d.account
}

// Address returns the account address.
func (d *AccountData) Address() types.AccountAddress {
	return d.account.Address()
}

// AuthKey returns the authentication key of the current keypair.
func (d *AccountData) AuthKey() crypto.AuthenticationKey {
	return d.account.AuthKey()
}

// Role returns the account's role record.
func (d *AccountData) Role() AccountRole {
	return d.role
}

// SequenceNumber returns the account's sequence number.
func (d *AccountData) SequenceNumber() uint64 {
	return d.sequenceNumber
}

// Frozen reports whether the account is frozen.
func (d *AccountData) Frozen() bool {
	return d.frozen
}

// Balance returns the balance held in the given currency.
func (d *AccountData) Balance(code types.Identifier) (Balance, error) {
	b, ok := d.balances[code]
	if !ok {
		return Balance{}, fmt.Errorf("%w: %s", ErrBalanceNotFound, code)
	}
	return b, nil
}

// CurrencyCodes returns the held currency codes in ascending order,
// the same order ToWriteSet emits balance entries in.
func (d *AccountData) CurrencyCodes() []types.Identifier {
	codes := make([]types.Identifier, 0, len(d.balances))
	for code := range d.balances {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// SentEventsCount returns the event count of the sent stream.
func (d *AccountData) SentEventsCount() uint64 {
	return d.sentEvents.Count()
}

// SentEventsKey returns the key of the sent stream.
func (d *AccountData) SentEventsKey() EventKey {
	return d.sentEvents.Key()
}

// ReceivedEventsCount returns the event count of the received stream.
func (d *AccountData) ReceivedEventsCount() uint64 {
	return d.receivedEvents.Count()
}

// ReceivedEventsKey returns the key of the received stream.
func (d *AccountData) ReceivedEventsKey() EventKey {
	return d.receivedEvents.Key()
}

// ToValue builds the account resource value in the exact field order
// of the on-chain struct: authentication key, withdraw capability,
// key rotation capability, received events, sent events, sequence
// number, frozen flag, role id.
func (d *AccountData) ToValue() vm.Value {
	withdraw := vm.NewVector()
	if d.withdrawCap != nil {
		withdraw = vm.NewVector(d.withdrawCap.ToValue())
	}
	keyRotation := vm.NewVector()
	if d.keyRotationCap != nil {
		keyRotation = vm.NewVector(d.keyRotationCap.ToValue())
	}
	return vm.NewStruct(
		vm.Bytes(d.account.AuthKey().Bytes()),
		withdraw,
		keyRotation,
		d.receivedEvents.ToValue(),
		d.sentEvents.ToValue(),
		vm.U64(d.sequenceNumber),
		vm.Bool(d.frozen),
		vm.U64(d.role.Specifier().Id()),
	)
}

// AccountLayout returns the layout of the account resource. Field
// order is the wire contract; any reordering silently corrupts every
// synthesized account.
func AccountLayout() *vm.FatStructType {
	return &vm.FatStructType{
		Address:    protocol.CoreCodeAddress,
		Module:     protocol.AccountModuleName,
		Name:       protocol.AccountStructName,
		IsResource: true,
		Layout: []vm.FatType{
			vm.VectorType(vm.U8Type()),
			vm.VectorType(vm.StructType(WithdrawCapabilityLayout())),
			vm.VectorType(vm.StructType(KeyRotationCapabilityLayout())),
			vm.StructType(EventHandleLayout(protocol.ReceivedPaymentEventTag())),
			vm.StructType(EventHandleLayout(protocol.SentPaymentEventTag())),
			vm.U64Type(),
			vm.BoolType(),
			vm.U64Type(),
		},
	}
}

// ToWriteSet converts the snapshot into the write-set a correct
// on-chain creation would have produced: the account resource, one
// balance resource per currency in ascending code order, then the
// event generator resource. The output is byte-identical across calls
// on an unmodified snapshot. Any serialization failure aborts the
// whole synthesis; a partial write-set is never returned.
func (d *AccountData) ToWriteSet() (types.WriteSet, error) {
	ws := types.NewWriteSetMut()

	accountBlob, err := vm.Serialize(d.ToValue(), vm.StructType(AccountLayout()))
	if err != nil {
		return types.WriteSet{}, fmt.Errorf("account resource: %w", err)
	}
	ws.Push(d.account.AccountAccessPath(), types.NewValueOp(accountBlob))

	for _, code := range d.CurrencyCodes() {
		blob, err := vm.Serialize(d.balances[code].ToValue(), vm.StructType(BalanceLayout()))
		if err != nil {
			return types.WriteSet{}, fmt.Errorf("balance %s: %w", code, err)
		}
		ws.Push(d.account.BalanceAccessPath(code), types.NewValueOp(blob))
	}

	generatorBlob, err := vm.Serialize(d.eventGenerator.ToValue(), vm.StructType(EventGeneratorLayout()))
	if err != nil {
		return types.WriteSet{}, fmt.Errorf("event generator: %w", err)
	}
	ws.Push(d.account.EventGeneratorAccessPath(), types.NewValueOp(generatorBlob))

	return ws.Freeze(), nil
}
