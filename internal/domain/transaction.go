package domain

import "errors"

// MoneyPrinter is the sentinel source account name used by minting.
// It never corresponds to a stored account and is the only sanctioned
// way new money enters the ledger.
const MoneyPrinter = "Printer"

var (
	// ErrInvalidAmount indicates that the amount is not a positive whole number.
	ErrInvalidAmount = errors.New("amount must be a positive whole number")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrSelfTransfer indicates a transfer with identical source and destination.
	ErrSelfTransfer = errors.New("cannot transfer to the same account")
	// ErrTxConflict indicates that the atomic commit lost to a concurrent
	// modification of one of the accounts. Nothing was written; the caller
	// may retry the whole request.
	ErrTxConflict = errors.New("transaction aborted by concurrent modification")
)

// Transaction is the immutable record of a committed transfer.
//
// The json field names are the persisted record format and must not change.
// ID is a ULID so records sort by creation time.
type Transaction struct {
	FromAccountName string `json:"fromAccountName"`
	ToAccountName   string `json:"toAccountName"`
	Amount          int64  `json:"amount"`
	ID              string `json:"id"`
}

// CreateTransactionParams is the input data for the transfer engine.
type CreateTransactionParams struct {
	FromAccountName string
	ToAccountName   string
	Amount          int64
}

// TransferParams is a transfer request after field extraction but before
// business-rule validation. Amount is the raw json number as received.
type TransferParams struct {
	FromAccountName string
	ToAccountName   string
	Amount          float64
	Pin             string
}

// MintParams is a money-creation request after field extraction.
type MintParams struct {
	ToAccountName string
	Amount        float64
	Secret        string
}

// TxResult is the result of a committed transfer or mint.
type TxResult struct {
	Transaction Transaction `json:"transaction"`
	FromAccount Account     `json:"fromAccount"`
	ToAccount   Account     `json:"toAccount"`
}
