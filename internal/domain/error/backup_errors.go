package error

import "errors"

// Backup domain errors.
var (
	// ErrUnsupportedFormat is returned for an export or import format other than csv, json and xlsx.
	ErrUnsupportedFormat = errors.New("unsupported backup format")

	// ErrInvalidBackupRow is returned when an imported row cannot be read.
	ErrInvalidBackupRow = errors.New("invalid backup row")
)

// BackupErrorCode defines error codes for backup errors.
// Format: BAK-XXYYYY where XX is category and YYYY is specific error.
type BackupErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeUnsupportedFormat BackupErrorCode = "BAK-010001"
	ErrCodeInvalidBackupRow  BackupErrorCode = "BAK-010002"
	ErrCodeEmptyBackup       BackupErrorCode = "BAK-010003"
)

type BackupError struct {
	Coded[BackupErrorCode]
}

// NewBackupError creates a new BackupError with the given code and message.
func NewBackupError(code BackupErrorCode, message string, err error) *BackupError {
	return &BackupError{Coded[BackupErrorCode]{Code: code, Message: message, Err: err}}
}
