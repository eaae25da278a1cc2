package error

import "errors"

// Analytics domain errors.
var (
	// ErrSummaryNotFound is returned when a summary does not exist or belongs to another user.
	ErrSummaryNotFound = errors.New("analytics summary not found")
)

// AnalyticsErrorCode defines error codes for analytics errors.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalyticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingAnalyticsFields AnalyticsErrorCode = "ANL-010001"

	// Lookup errors (02XXXX)
	ErrCodeSummaryNotFound AnalyticsErrorCode = "ANL-020001"
)

type AnalyticsError struct {
	Coded[AnalyticsErrorCode]
}

// NewAnalyticsError creates a new AnalyticsError with the given code and message.
func NewAnalyticsError(code AnalyticsErrorCode, message string, err error) *AnalyticsError {
	return &AnalyticsError{Coded[AnalyticsErrorCode]{Code: code, Message: message, Err: err}}
}
