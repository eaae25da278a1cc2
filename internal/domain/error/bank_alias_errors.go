package error

import "errors"

// Bank alias domain errors.
var (
	// ErrAliasNotFound is returned when the alias does not exist for the user.
	ErrAliasNotFound = errors.New("alias not found")

	// ErrAliasExists is returned when the user already defined the alias.
	ErrAliasExists = errors.New("alias already exists")
)

// BankAliasErrorCode defines error codes for bank alias errors.
// Format: ALS-XXYYYY where XX is category and YYYY is specific error.
type BankAliasErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingAliasFields BankAliasErrorCode = "ALS-010001"

	// Lookup errors (02XXXX)
	ErrCodeAliasNotFound BankAliasErrorCode = "ALS-020001"

	// Conflict errors (03XXXX)
	ErrCodeAliasExists BankAliasErrorCode = "ALS-030001"
)

type BankAliasError struct {
	Coded[BankAliasErrorCode]
}

// NewBankAliasError creates a new BankAliasError with the given code and message.
func NewBankAliasError(code BankAliasErrorCode, message string, err error) *BankAliasError {
	return &BankAliasError{Coded[BankAliasErrorCode]{Code: code, Message: message, Err: err}}
}
