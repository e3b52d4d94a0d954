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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Mount and input errors
	ErrNotMount     ErrorCode = "NOT_A_MOUNT"
	ErrNotDirectory ErrorCode = "NOT_A_DIRECTORY"

	// Filesystem query errors
	ErrXattrQuery ErrorCode = "XATTR_QUERY"
	ErrSizeWalk   ErrorCode = "SIZE_WALK"

	// Execution errors
	ErrCommandExecute ErrorCode = "COMMAND_EXECUTE"
	ErrOutput         ErrorCode = "OUTPUT"
)

// MergerfsError represents a structured error with code and details
type MergerfsError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MergerfsError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MergerfsError) Unwrap() error {
	return e.Wrapped
}

// Is matches any *MergerfsError carrying the same code.
func (e *MergerfsError) Is(target error) bool {
	var targetErr *MergerfsError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MergerfsError with the given code and message
func New(code ErrorCode, message string) *MergerfsError {
	return &MergerfsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MergerfsError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MergerfsError {
	return &MergerfsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MergerfsError. A nil err yields nil.
func Wrap(err error, code ErrorCode, message string) *MergerfsError {
	if err == nil {
		return nil
	}
	return &MergerfsError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MergerfsError {
	if err == nil {
		return nil
	}
	return &MergerfsError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MergerfsError) WithDetail(key string, value interface{}) *MergerfsError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var mErr *MergerfsError
	if errors.As(err, &mErr) {
		return mErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MergerfsError
func GetErrorCode(err error) ErrorCode {
	var mErr *MergerfsError
	if errors.As(err, &mErr) {
		return mErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a MergerfsError
func GetErrorDetails(err error) map[string]interface{} {
	var mErr *MergerfsError
	if errors.As(err, &mErr) {
		return mErr.Details
	}
	return nil
}
