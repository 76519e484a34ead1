package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  ErrorCode = "CONFIG_INVALID"

	// Staging errors
	ErrCodeStagingAlloc         ErrorCode = "STAGING_ALLOC_FAILED"
	ErrCodeStagingClosed        ErrorCode = "STAGING_CLOSED"
	ErrCodeUnsupportedExtension ErrorCode = "UNSUPPORTED_EXTENSION"
	ErrCodeTeardownFailed       ErrorCode = "TEARDOWN_FAILED"

	// Document errors
	ErrCodeMissingFile        ErrorCode = "MISSING_FILE"
	ErrCodeLoadFailed         ErrorCode = "LOAD_FAILED"
	ErrCodeExtractUnavailable ErrorCode = "EXTRACT_UNAVAILABLE"

	// Instance errors
	ErrCodeInstanceRunning     ErrorCode = "INSTANCE_RUNNING"
	ErrCodeInstanceUnreachable ErrorCode = "INSTANCE_UNREACHABLE"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Error represents a structured error with context
type Error struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *Error) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new Error
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an Error
func Wrap(err error, code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error (or anything it wraps) carries the given code.
func Is(err error, code ErrorCode) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the first error code found in the error tree.
func GetCode(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.Code
	}
	return ""
}

// As returns the first *Error in the error tree, including joined errors.
func As(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}
