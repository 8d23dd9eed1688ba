package tx

// TxnReserved is the gas amount reserved up front for one fixture
// transaction. Script shorthands budget twice this ceiling so no
// fixture transaction ever runs out of gas.
const TxnReserved uint64 = 140_000
