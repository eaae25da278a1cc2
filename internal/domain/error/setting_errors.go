package error

import "errors"

// Setting domain errors.
var (
	// ErrSettingNotFound is returned when a setting row does not exist or belongs to another user.
	ErrSettingNotFound = errors.New("setting not found")

	// ErrNothingToSet is returned when an upsert carries no settable value.
	ErrNothingToSet = errors.New("nothing to update")

	// ErrNegativeThreshold is returned when a balance or limit is negative.
	ErrNegativeThreshold = errors.New("threshold must not be negative")
)

// SettingErrorCode defines error codes for setting errors.
// Format: SET-XXYYYY where XX is category and YYYY is specific error.
type SettingErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingSettingFields SettingErrorCode = "SET-010001"
	ErrCodeNothingToSet         SettingErrorCode = "SET-010002"
	ErrCodeInvalidThreshold     SettingErrorCode = "SET-010003"

	// Lookup errors (02XXXX)
	ErrCodeSettingNotFound SettingErrorCode = "SET-020001"
)

type SettingError struct {
	Coded[SettingErrorCode]
}

// NewSettingError creates a new SettingError with the given code and message.
func NewSettingError(code SettingErrorCode, message string, err error) *SettingError {
	return &SettingError{Coded[SettingErrorCode]{Code: code, Message: message, Err: err}}
}
