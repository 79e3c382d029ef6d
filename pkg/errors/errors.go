package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown     ErrorCode = "UNKNOWN"
	ErrInternal    ErrorCode = "INTERNAL"
	ErrInvalidArgs ErrorCode = "INVALID_ARGS"
	ErrNotFound    ErrorCode = "NOT_FOUND"

	// Link reconciliation errors
	ErrSelfLink  ErrorCode = "SELF_LINK"
	ErrDestIsDir ErrorCode = "DEST_IS_DIR"

	// Collaborator errors
	ErrBackupFailed ErrorCode = "BACKUP_FAILED"
	ErrCopyFailed   ErrorCode = "COPY_FAILED"
	ErrIgnoreCheck  ErrorCode = "IGNORE_CHECK"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// FileSystem errors
	ErrFileNotFound  ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

// SymgrError represents a structured error with code and details
type SymgrError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *SymgrError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *SymgrError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *SymgrError) Is(target error) bool {
	var targetErr *SymgrError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new SymgrError with the given code and message
func New(code ErrorCode, message string) *SymgrError {
	return &SymgrError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new SymgrError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SymgrError {
	return &SymgrError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a SymgrError
func Wrap(err error, code ErrorCode, message string) *SymgrError {
	if err == nil {
		return nil
	}
	return &SymgrError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SymgrError {
	if err == nil {
		return nil
	}
	return &SymgrError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *SymgrError) WithDetail(key string, value interface{}) *SymgrError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var symgrErr *SymgrError
	if errors.As(err, &symgrErr) {
		return symgrErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a SymgrError
func GetErrorCode(err error) ErrorCode {
	var symgrErr *SymgrError
	if errors.As(err, &symgrErr) {
		return symgrErr.Code
	}
	return ErrUnknown
}
