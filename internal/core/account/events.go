package account

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/LeJamon/goLibra/internal/core/protocol"
	"github.com/LeJamon/goLibra/internal/core/types"
	"github.com/LeJamon/goLibra/internal/core/vm"
	"github.com/LeJamon/goLibra/internal/crypto"
)

// EventKeyLength is the size of an event stream key in bytes: an
// 8-byte creation number followed by the 16-byte creator address.
const EventKeyLength = 8 + types.AddressLength

// EventKey globally identifies one event stream.
type EventKey [EventKeyLength]byte

// NewEventKey derives the key of the stream created as the counter-th
// stream of addr.
func NewEventKey(counter uint64, addr types.AccountAddress) EventKey {
	var key EventKey
	binary.LittleEndian.PutUint64(key[:8], counter)
	copy(key[8:], addr[:])
	return key
}

// RandomEventKey draws a key from the system CSPRNG. Streams keyed
// this way are not linkable to any account.
func RandomEventKey() (EventKey, error) {
	var key EventKey
	b, err := crypto.RandomBytes(EventKeyLength)
	if err != nil {
		return key, err
	}
	copy(key[:], b)
	return key, nil
}

// Bytes returns the key as a byte slice copy.
func (k EventKey) Bytes() []byte {
	out := make([]byte, EventKeyLength)
	copy(out, k[:])
	return out
}

// Hex returns the lowercase hex encoding of the key.
func (k EventKey) Hex() string {
	return hex.EncodeToString(k[:])
}

// EventHandle counts the events emitted to one stream and names the
// stream by its key.
type EventHandle struct {
	count uint64
	key   EventKey
}

// NewEventHandle builds a handle with the given key and count.
func NewEventHandle(key EventKey, count uint64) EventHandle {
	return EventHandle{count: count, key: key}
}

// RandomHandle builds a handle with a random key and the given count,
// for pre-seeding a stream that no generator produced.
func RandomHandle(count uint64) (EventHandle, error) {
	key, err := RandomEventKey()
	if err != nil {
		return EventHandle{}, err
	}
	return NewEventHandle(key, count), nil
}

// Count returns the number of events emitted to the stream.
func (h EventHandle) Count() uint64 {
	return h.count
}

// Key returns the stream key.
func (h EventHandle) Key() EventKey {
	return h.key
}

// ToValue builds the event handle value: count, then key bytes.
func (h EventHandle) ToValue() vm.Value {
	return vm.NewStruct(vm.U64(h.count), vm.Bytes(h.key.Bytes()))
}

// EventHandleLayout returns the layout of an event handle typed by the
// event it carries.
func EventHandleLayout(event types.StructTag) *vm.FatStructType {
	return &vm.FatStructType{
		Address:    protocol.CoreCodeAddress,
		Module:     protocol.EventModuleName,
		Name:       protocol.EventHandleStructName,
		IsResource: true,
		TypeParams: []types.TypeTag{types.StructTypeTag(event)},
		Layout:     []vm.FatType{vm.U64Type(), vm.VectorType(vm.U8Type())},
	}
}

// SentPaymentEventLayout returns the layout of a sent-payment event:
// amount, payee, metadata. Events are plain structs, not resources;
// they are decoded out of emitted event streams, never stored under an
// access path.
func SentPaymentEventLayout() *vm.FatStructType {
	return paymentEventLayout(protocol.SentPaymentEventName)
}

// ReceivedPaymentEventLayout returns the layout of a received-payment
// event: amount, payer, metadata.
func ReceivedPaymentEventLayout() *vm.FatStructType {
	return paymentEventLayout(protocol.ReceivedPaymentEventName)
}

func paymentEventLayout(name types.Identifier) *vm.FatStructType {
	return &vm.FatStructType{
		Address: protocol.CoreCodeAddress,
		Module:  protocol.AccountModuleName,
		Name:    name,
		Layout: []vm.FatType{
			vm.U64Type(),
			vm.AddressType(),
			vm.VectorType(vm.U8Type()),
		},
	}
}

// EventHandleGenerator assigns stream keys for one account. Each
// handle it creates consumes one counter value, so keys are unique per
// account and reproducible from (address, counter).
type EventHandleGenerator struct {
	counter uint64
	addr    types.AccountAddress
}

// NewEventHandleGenerator returns a generator for addr starting at
// counter zero.
func NewEventHandleGenerator(addr types.AccountAddress) *EventHandleGenerator {
	return &EventHandleGenerator{addr: addr}
}

// NewEventHandleGeneratorWithCount returns a generator whose counter
// already stands at the given value.
func NewEventHandleGeneratorWithCount(addr types.AccountAddress, counter uint64) *EventHandleGenerator {
	return &EventHandleGenerator{addr: addr, counter: counter}
}

// NewHandle derives the next event handle: the key binds the current
// counter to the generator's address, then the counter advances.
func (g *EventHandleGenerator) NewHandle() EventHandle {
	key := NewEventKey(g.counter, g.addr)
	g.counter++
	return NewEventHandle(key, 0)
}

// Counter returns the number of handles created so far.
func (g *EventHandleGenerator) Counter() uint64 {
	return g.counter
}

// Address returns the account the generator belongs to.
func (g *EventHandleGenerator) Address() types.AccountAddress {
	return g.addr
}

// ToValue builds the generator resource value: counter, then address.
func (g *EventHandleGenerator) ToValue() vm.Value {
	return vm.NewStruct(vm.U64(g.counter), vm.NewAddress(g.addr))
}

// EventGeneratorLayout returns the layout of the event handle
// generator resource.
func EventGeneratorLayout() *vm.FatStructType {
	return &vm.FatStructType{
		Address:    protocol.CoreCodeAddress,
		Module:     protocol.EventModuleName,
		Name:       protocol.EventGeneratorName,
		IsResource: true,
		Layout:     []vm.FatType{vm.U64Type(), vm.AddressType()},
	}
}
