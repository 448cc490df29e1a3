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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Install step errors
	ErrOrderingViolation ErrorCode = "ORDERING_VIOLATION"
	ErrFetchFailed       ErrorCode = "FETCH_FAILED"
	ErrDocsFailed        ErrorCode = "DOCS_FAILED"
	ErrCleanupFailed     ErrorCode = "CLEANUP_FAILED"
	ErrLinkFailed        ErrorCode = "LINK_FAILED"
	ErrHeaderMapping     ErrorCode = "HEADER_MAPPING"

	// Source errors
	ErrSourceInvalid ErrorCode = "SOURCE_INVALID"
	ErrCacheFailed   ErrorCode = "CACHE_FAILED"

	// FileSystem errors
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrFileRemove    ErrorCode = "FILE_REMOVE"
	ErrFileWrite     ErrorCode = "FILE_WRITE"
	ErrSymlinkCreate ErrorCode = "SYMLINK_CREATE"
	ErrDirCreate     ErrorCode = "DIR_CREATE"
)

// PodkitError represents a structured error with code and details
type PodkitError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PodkitError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PodkitError) Unwrap() error {
	return e.Wrapped
}

// Is matches any PodkitError carrying the same code
func (e *PodkitError) Is(target error) bool {
	var targetErr *PodkitError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PodkitError with the given code and message
func New(code ErrorCode, message string) *PodkitError {
	return &PodkitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PodkitError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PodkitError {
	return &PodkitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PodkitError
func Wrap(err error, code ErrorCode, message string) *PodkitError {
	if err == nil {
		return nil
	}
	return &PodkitError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PodkitError {
	if err == nil {
		return nil
	}
	return &PodkitError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PodkitError) WithDetail(key string, value interface{}) *PodkitError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *PodkitError) WithDetails(details map[string]interface{}) *PodkitError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var podErr *PodkitError
	if errors.As(err, &podErr) {
		return podErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PodkitError
func GetErrorCode(err error) ErrorCode {
	var podErr *PodkitError
	if errors.As(err, &podErr) {
		return podErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PodkitError
func GetErrorDetails(err error) map[string]interface{} {
	var podErr *PodkitError
	if errors.As(err, &podErr) {
		return podErr.Details
	}
	return nil
}
