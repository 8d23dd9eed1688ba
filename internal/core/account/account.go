// Package account synthesizes ledger account state for test fixtures.
// An Account is a keypair plus the address derived from its original
// public key; an AccountData aggregates the account with balances,
// event streams, capabilities, and bookkeeping fields, and converts the
// whole snapshot into the write-set a correct on-chain account creation
// would have produced. Nothing here executes transactions; the package
// fabricates their result state directly.
package account

import (
	"crypto/ed25519"

	"github.com/LeJamon/goLibra/internal/core/protocol"
	"github.com/LeJamon/goLibra/internal/core/types"
	"github.com/LeJamon/goLibra/internal/crypto"
)

// Account is a logical account identity: the current keypair and the
// address fixed at construction time. Rotating the key replaces the
// keypair but never the address; after a rotation the stored
// authentication key diverges from the address on purpose.
type Account struct {
	addr types.AccountAddress
	kp   crypto.KeyPair
}

// New creates an account with a fresh keypair from the system CSPRNG.
func New() (Account, error) {
	kp, err := crypto.NewKeyPair()
	if err != nil {
		return Account{}, err
	}
	return WithKeyPair(kp), nil
}

// WithKeyPair creates an account around an existing keypair. The
// address is derived from the pair's public key, so the same pair
// always yields the same account.
func WithKeyPair(kp crypto.KeyPair) Account {
	return Account{
		addr: types.AddressFromPublicKey(kp.Public),
		kp:   kp,
	}
}

// NewWithKeyGen creates an account from the next keypair of g.
func NewWithKeyGen(g *crypto.KeyGen) Account {
	return WithKeyPair(g.Generate())
}

// NewGenesis returns the account at addr holding the shared genesis
// keypair. Well-known accounts created at genesis do not derive their
// address from their key.
func NewGenesis(addr types.AccountAddress) Account {
	return Account{addr: addr, kp: genesisKeyPair()}
}

// NewAssociation returns the association root account.
func NewAssociation() Account {
	return NewGenesis(protocol.AssociationAddress)
}

// NewTreasuryCompliance returns the treasury compliance account.
func NewTreasuryCompliance() Account {
	return NewGenesis(protocol.TreasuryComplianceAddress)
}

func genesisKeyPair() crypto.KeyPair {
	kp, err := crypto.KeyPairFromSeed(protocol.GenesisSeed[:])
	if err != nil {
		// The genesis seed always has the right length.
		panic(err)
	}
	return kp
}

// Address returns the account address. Immutable for the lifetime of
// the account.
func (a Account) Address() types.AccountAddress {
	return a.addr
}

// PublicKey returns the current public key.
func (a Account) PublicKey() ed25519.PublicKey {
	return a.kp.Public
}

// KeyPair returns the current keypair.
func (a Account) KeyPair() crypto.KeyPair {
	return a.kp
}

// AuthKey returns the authentication key of the current public key.
// Equal to the address-bearing initial key until the first rotation.
func (a Account) AuthKey() crypto.AuthenticationKey {
	return a.kp.AuthKey()
}

// AuthKeyPrefix returns the first half of the authentication key.
// Account-creation operations take the prefix and recover the full key
// from the new account's address.
func (a Account) AuthKeyPrefix() []byte {
	return a.AuthKey().Prefix()
}

// RotateKey replaces the keypair. The address stays fixed; this is the
// behavior key-rotation scenarios exercise.
func (a *Account) RotateKey(kp crypto.KeyPair) {
	a.kp = kp
}

// AccountAccessPath returns the storage path of the account resource.
func (a Account) AccountAccessPath() types.AccessPath {
	return types.ResourceAccessPath(a.addr, protocol.AccountStructTag())
}

// BalanceAccessPath returns the storage path of the balance resource
// for the given currency. Paths differ per currency because the struct
// tag carries the currency type parameter.
func (a Account) BalanceAccessPath(code types.Identifier) types.AccessPath {
	return types.ResourceAccessPath(a.addr, protocol.BalanceStructTag(code))
}

// EventGeneratorAccessPath returns the storage path of the event
// handle generator resource.
func (a Account) EventGeneratorAccessPath() types.AccessPath {
	return types.ResourceAccessPath(a.addr, protocol.EventGeneratorStructTag())
}
