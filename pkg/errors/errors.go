// Package errors provides the coded error type shared by every include-source
// package, plus the PluginError envelope used to report per-file failures.
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
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Resolution and substitution errors
	ErrBadPattern ErrorCode = "BAD_PATTERN"
	ErrRegion     ErrorCode = "REGION"

	// Pipeline errors
	ErrUnsupportedMode ErrorCode = "UNSUPPORTED_MODE"
	ErrUnstructured    ErrorCode = "UNSTRUCTURED"
	ErrBatchFailed     ErrorCode = "BATCH_FAILED"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrLock         ErrorCode = "LOCK"
	ErrWatch        ErrorCode = "WATCH"
)

// IncludeError represents a structured error with code and details
type IncludeError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *IncludeError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *IncludeError) Unwrap() error {
	return e.Wrapped
}

// Is matches any IncludeError carrying the same code
func (e *IncludeError) Is(target error) bool {
	var targetErr *IncludeError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new IncludeError with the given code and message
func New(code ErrorCode, message string) *IncludeError {
	return &IncludeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new IncludeError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *IncludeError {
	return &IncludeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an IncludeError
func Wrap(err error, code ErrorCode, message string) *IncludeError {
	if err == nil {
		return nil
	}
	return &IncludeError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *IncludeError {
	if err == nil {
		return nil
	}
	return &IncludeError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *IncludeError) WithDetail(key string, value interface{}) *IncludeError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var includeErr *IncludeError
	if errors.As(err, &includeErr) {
		return includeErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an IncludeError
func GetErrorCode(err error) ErrorCode {
	var includeErr *IncludeError
	if errors.As(err, &includeErr) {
		return includeErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an IncludeError
func GetErrorDetails(err error) map[string]interface{} {
	var includeErr *IncludeError
	if errors.As(err, &includeErr) {
		return includeErr.Details
	}
	return nil
}
