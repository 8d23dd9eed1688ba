// Package tx builds and signs ledger transactions over synthesized
// account state. Everything here is a pure computation: builders
// assemble a RawTransaction value, signing hashes its canonical bytes
// under a domain prefix and never mutates the input.
package tx

import (
	"crypto/ed25519"
	"errors"

	"github.com/LeJamon/goLibra/internal/codec/lcs"
	"github.com/LeJamon/goLibra/internal/core/protocol"
	"github.com/LeJamon/goLibra/internal/core/types"
	"github.com/LeJamon/goLibra/internal/crypto"
)

// DefaultExpirationTime is the expiration horizon of fixture
// transactions, in seconds from logical time zero. It comfortably
// outlives any test run while staying distinguishable from the
// production one-day horizon.
const DefaultExpirationTime uint64 = 40_000

// ErrInvalidSignature is returned when a signed transaction's
// signature does not verify against its authenticator's public key.
var ErrInvalidSignature = errors.New("transaction signature does not verify")

// RawTransaction is an unsigned transaction. The sender is a bare
// address; nothing ties it to the key that will eventually sign.
type RawTransaction struct {
	Sender          types.AccountAddress
	SequenceNumber  uint64
	Payload         Payload
	MaxGasAmount    uint64
	GasUnitPrice    uint64
	GasCurrencyCode types.Identifier
	ExpirationTime  uint64
}

// NewRawTransaction builds a raw transaction with an explicit
// expiration.
func NewRawTransaction(sender types.AccountAddress, sequenceNumber uint64,
	payload Payload, maxGasAmount, gasUnitPrice uint64,
	gasCurrencyCode types.Identifier, expirationTime uint64) RawTransaction {
	return RawTransaction{
		Sender:          sender,
		SequenceNumber:  sequenceNumber,
		Payload:         payload,
		MaxGasAmount:    maxGasAmount,
		GasUnitPrice:    gasUnitPrice,
		GasCurrencyCode: gasCurrencyCode,
		ExpirationTime:  expirationTime,
	}
}

// NewScriptTransaction builds a raw script transaction with the
// default expiration horizon.
func NewScriptTransaction(sender types.AccountAddress, sequenceNumber uint64,
	script Script, maxGasAmount, gasUnitPrice uint64,
	gasCurrencyCode types.Identifier) RawTransaction {
	return NewRawTransaction(sender, sequenceNumber, NewScriptPayload(script),
		maxGasAmount, gasUnitPrice, gasCurrencyCode, DefaultExpirationTime)
}

// NewModuleTransaction builds a raw module-publish transaction with
// the default expiration horizon.
func NewModuleTransaction(sender types.AccountAddress, sequenceNumber uint64,
	module Module, maxGasAmount, gasUnitPrice uint64,
	gasCurrencyCode types.Identifier) RawTransaction {
	return NewRawTransaction(sender, sequenceNumber, NewModulePayload(module),
		maxGasAmount, gasUnitPrice, gasCurrencyCode, DefaultExpirationTime)
}

// NewWriteSetTransaction builds a raw transaction applying ws
// directly. Write-set transactions bypass execution, so the gas
// fields and the expiration are all zero.
func NewWriteSetTransaction(sender types.AccountAddress, sequenceNumber uint64,
	ws types.WriteSet) RawTransaction {
	return RawTransaction{
		Sender:          sender,
		SequenceNumber:  sequenceNumber,
		Payload:         NewWriteSetPayload(ws),
		GasCurrencyCode: protocol.DefaultCurrencyCode,
	}
}

// EncodeLCS writes the canonical transaction bytes: sender, sequence
// number, payload, gas fields, gas currency, expiration.
func (t RawTransaction) EncodeLCS(e *lcs.Encoder) {
	t.Sender.EncodeLCS(e)
	e.WriteU64(t.SequenceNumber)
	t.Payload.EncodeLCS(e)
	e.WriteU64(t.MaxGasAmount)
	e.WriteU64(t.GasUnitPrice)
	e.WriteString(string(t.GasCurrencyCode))
	e.WriteU64(t.ExpirationTime)
}

// Bytes returns the canonical transaction bytes.
func (t RawTransaction) Bytes() []byte {
	e := lcs.NewEncoder()
	t.EncodeLCS(e)
	return e.Bytes()
}

// SigningDigest returns the digest a signer commits to: the raw
// transaction domain prefix followed by the canonical bytes, hashed.
func (t RawTransaction) SigningDigest() [32]byte {
	return crypto.Sha3Digest(protocol.HashPrefixRawTransaction.Bytes(), t.Bytes())
}

// Authenticator carries the proof of who signed a transaction.
type Authenticator struct {
	Scheme    crypto.Scheme
	PublicKey ed25519.PublicKey
	Signature []byte
}

// EncodeLCS writes the scheme variant, the public key, and the
// signature.
func (a Authenticator) EncodeLCS(e *lcs.Encoder) {
	e.WriteVariant(uint32(a.Scheme))
	e.WriteBytes(a.PublicKey)
	e.WriteBytes(a.Signature)
}

// SignedTransaction pairs a raw transaction with its authenticator.
type SignedTransaction struct {
	Raw           RawTransaction
	Authenticator Authenticator
}

// Sign signs the raw transaction with kp. The signer's address is
// deliberately never compared to the sender field: authorization
// failures are a fixture scenario, and rejecting the mismatch here
// would move that check out of the execution layer where it belongs.
func Sign(raw RawTransaction, kp crypto.KeyPair) SignedTransaction {
	digest := raw.SigningDigest()
	return SignedTransaction{
		Raw: raw,
		Authenticator: Authenticator{
			Scheme:    crypto.SchemeEd25519,
			PublicKey: kp.Public,
			Signature: kp.SignDigest(digest),
		},
	}
}

// Verify checks the signature against the authenticator's own public
// key. It says nothing about the sender address.
func (t SignedTransaction) Verify() error {
	if !crypto.VerifyDigest(t.Authenticator.PublicKey, t.Raw.SigningDigest(), t.Authenticator.Signature) {
		return ErrInvalidSignature
	}
	return nil
}

// EncodeLCS writes the raw transaction followed by the authenticator.
func (t SignedTransaction) EncodeLCS(e *lcs.Encoder) {
	t.Raw.EncodeLCS(e)
	t.Authenticator.EncodeLCS(e)
}

// Bytes returns the canonical signed transaction bytes.
func (t SignedTransaction) Bytes() []byte {
	e := lcs.NewEncoder()
	t.EncodeLCS(e)
	return e.Bytes()
}

// Hash returns the transaction id: the signed transaction domain
// prefix followed by the canonical bytes, hashed.
func (t SignedTransaction) Hash() [32]byte {
	return crypto.Sha3Digest(protocol.HashPrefixSignedTransaction.Bytes(), t.Bytes())
}
