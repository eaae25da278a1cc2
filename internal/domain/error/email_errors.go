package error

import "errors"

// ErrUnknownTemplate is returned when a job names a template that does not exist.
var ErrUnknownTemplate = errors.New("unknown email template")

// EmailErrorCode defines error codes for outbound email.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Queue errors (01XXXX)
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"

	// Provider errors (02XXXX). Permanent failures are not retried.
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"

	// Template errors (03XXXX)
	ErrCodeUnknownTemplate EmailErrorCode = "EMAIL-030001"
)

type EmailError struct {
	Coded[EmailErrorCode]
}

// Permanent reports whether retrying cannot help.
func (e *EmailError) Permanent() bool {
	return e.Code == ErrCodePermanentEmailFailure || e.Code == ErrCodeUnknownTemplate
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{Coded[EmailErrorCode]{Code: code, Message: message, Err: err}}
}
