package account

import (
	"fmt"

	"github.com/LeJamon/goLibra/internal/core/protocol"
	"github.com/LeJamon/goLibra/internal/core/tx"
	"github.com/LeJamon/goLibra/internal/core/types"
)

// CreateRawUserTxn builds the raw transaction carrying payload from
// sender. Script and module payloads take the given gas profile and
// the default expiration; write-set payloads take the zero gas
// profile, with the gas arguments accepted and ignored.
func CreateRawUserTxn(sender types.AccountAddress, payload tx.Payload,
	sequenceNumber, maxGasAmount, gasUnitPrice uint64,
	gasCurrencyCode types.Identifier) tx.RawTransaction {
	switch payload.Kind {
	case tx.PayloadWriteSet:
		return tx.NewWriteSetTransaction(sender, sequenceNumber, payload.WriteSet)
	case tx.PayloadScript:
		return tx.NewScriptTransaction(sender, sequenceNumber, payload.Script,
			maxGasAmount, gasUnitPrice, gasCurrencyCode)
	case tx.PayloadModule:
		return tx.NewModuleTransaction(sender, sequenceNumber, payload.Module,
			maxGasAmount, gasUnitPrice, gasCurrencyCode)
	default:
		panic(fmt.Sprintf("unsupported payload kind %d", payload.Kind))
	}
}

// RawTxnWithArgs builds a raw script transaction from an explicit
// sender address.
func RawTxnWithArgs(sender types.AccountAddress, code []byte,
	tyArgs []types.TypeTag, args []tx.TransactionArgument,
	sequenceNumber, maxGasAmount, gasUnitPrice uint64,
	gasCurrencyCode types.Identifier) tx.RawTransaction {
	return tx.NewScriptTransaction(sender, sequenceNumber,
		tx.NewScript(code, tyArgs, args),
		maxGasAmount, gasUnitPrice, gasCurrencyCode)
}

// CreateUserTxn builds the transaction carrying payload from this
// account and signs it with the account's key.
func (a Account) CreateUserTxn(payload tx.Payload,
	sequenceNumber, maxGasAmount, gasUnitPrice uint64,
	gasCurrencyCode types.Identifier) tx.SignedTransaction {
	raw := CreateRawUserTxn(a.addr, payload, sequenceNumber,
		maxGasAmount, gasUnitPrice, gasCurrencyCode)
	return tx.Sign(raw, a.kp)
}

// CreateSignedTxnWithArgs builds and signs a script transaction sent
// by this account.
func (a Account) CreateSignedTxnWithArgs(code []byte,
	tyArgs []types.TypeTag, args []tx.TransactionArgument,
	sequenceNumber, maxGasAmount, gasUnitPrice uint64,
	gasCurrencyCode types.Identifier) tx.SignedTransaction {
	return a.CreateSignedTxnWithArgsAndSender(a.addr, code, tyArgs, args,
		sequenceNumber, maxGasAmount, gasUnitPrice, gasCurrencyCode)
}

// CreateSignedTxnWithArgsAndSender builds a script transaction with an
// arbitrary sender address and signs it with THIS account's key. The
// signature binds the signer, not the sender; authorization-failure
// fixtures depend on the mismatch being representable.
func (a Account) CreateSignedTxnWithArgsAndSender(sender types.AccountAddress,
	code []byte, tyArgs []types.TypeTag, args []tx.TransactionArgument,
	sequenceNumber, maxGasAmount, gasUnitPrice uint64,
	gasCurrencyCode types.Identifier) tx.SignedTransaction {
	raw := RawTxnWithArgs(sender, code, tyArgs, args,
		sequenceNumber, maxGasAmount, gasUnitPrice, gasCurrencyCode)
	return tx.Sign(raw, a.kp)
}

// SignedScriptTxn builds and signs a script transaction with the
// fixture gas shorthand: twice the reserved gas ceiling, zero unit
// price, default currency.
func (a Account) SignedScriptTxn(script tx.Script, sequenceNumber uint64) tx.SignedTransaction {
	return a.CreateUserTxn(tx.NewScriptPayload(script), sequenceNumber,
		2*tx.TxnReserved, 0, protocol.DefaultCurrencyCode)
}

// SignTxn signs a prepared raw transaction with the account's key.
func (a Account) SignTxn(raw tx.RawTransaction) tx.SignedTransaction {
	return tx.Sign(raw, a.kp)
}
