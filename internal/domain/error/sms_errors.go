package error

import "errors"

// SMS ingestion errors.
var (
	// ErrUnparseableSMS is returned when a message does not look like a bank notification.
	ErrUnparseableSMS = errors.New("could not extract transaction details from SMS")

	// ErrUnknownBank is returned when no alias, pattern or prefix identifies the bank.
	ErrUnknownBank = errors.New("could not identify bank from SMS")
)

// SMSErrorCode defines error codes for SMS errors.
// Format: SMS-XXYYYY where XX is category and YYYY is specific error.
type SMSErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingSMSFields SMSErrorCode = "SMS-010001"
	ErrCodeUnparseableSMS   SMSErrorCode = "SMS-010002"
	ErrCodeUnknownBank      SMSErrorCode = "SMS-010003"
)

type SMSError struct {
	Coded[SMSErrorCode]
}

// NewSMSError creates a new SMSError with the given code and message.
func NewSMSError(code SMSErrorCode, message string, err error) *SMSError {
	return &SMSError{Coded[SMSErrorCode]{Code: code, Message: message, Err: err}}
}
