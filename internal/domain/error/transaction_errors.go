// Package error defines domain-specific errors for the ledger application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction does not exist or belongs to another user.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidDirection is returned when the direction is neither credit nor debit.
	ErrInvalidDirection = errors.New("invalid transaction type")

	// ErrInvalidTransactionDate is returned when the transaction date is invalid.
	ErrInvalidTransactionDate = errors.New("invalid transaction date")

	// ErrInvalidTransactionAmount is returned when the amount is not a positive decimal.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrMissingBankName is returned when a transaction has no bank name.
	ErrMissingBankName = errors.New("bank name is required")

	// ErrNameTooLong is returned when the transaction name exceeds the maximum length.
	ErrNameTooLong = errors.New("name too long")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDirection         TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeMissingBankName          TransactionErrorCode = "TXN-010004"
	ErrCodeNameTooLong              TransactionErrorCode = "TXN-010005"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010006"
	ErrCodeInvalidTransactionFilter TransactionErrorCode = "TXN-010007"

	// Lookup errors (02XXXX)
	ErrCodeTransactionNotFound TransactionErrorCode = "TXN-020001"
)

type TransactionError struct {
	Coded[TransactionErrorCode]
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{Coded[TransactionErrorCode]{Code: code, Message: message, Err: err}}
}
