// Package errors provides coded, structured errors for dosetup.
//
// Every error raised by the core carries an ErrorCode so callers and tests can
// match on the kind of failure (errors.Is compares codes) rather than on
// message text. Details hold structured context such as the platform id or the
// exit code of a failed child process.
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
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigParse   ErrorCode = "CONFIG_PARSE"
	ErrConfigValid   ErrorCode = "CONFIG_INVALID"
	ErrCycleDetected ErrorCode = "CYCLE_DETECTED"

	// Expansion errors
	ErrPlatformConfigNotFound ErrorCode = "PLATFORM_CONFIG_NOT_FOUND"

	// Runtime errors
	ErrArgumentResolve      ErrorCode = "ARGUMENT_RESOLVE"
	ErrExecutionFailed      ErrorCode = "EXECUTION_FAILED"
	ErrPredicateExecution   ErrorCode = "PREDICATE_EXECUTION"
	ErrLinkPrecheck         ErrorCode = "LINK_PRECHECK"
	ErrLinkCreate           ErrorCode = "LINK_CREATE"
	ErrUnsupportedOperation ErrorCode = "UNSUPPORTED_OPERATION"
	ErrEnvironmentRefresh   ErrorCode = "ENVIRONMENT_REFRESH"
)

// DetailExitCode is the detail key holding a child process exit code
const DetailExitCode = "exit_code"

// Error represents a structured error with code and details
type Error struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new Error with the given code and message
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new Error with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an Error
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *Error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *Error) WithDetail(key string, value interface{}) *Error {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *Error) WithDetails(details map[string]interface{}) *Error {
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
	var codedErr *Error
	if errors.As(err, &codedErr) {
		return codedErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an Error
func GetErrorCode(err error) ErrorCode {
	var codedErr *Error
	if errors.As(err, &codedErr) {
		return codedErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an Error
func GetErrorDetails(err error) map[string]interface{} {
	var codedErr *Error
	if errors.As(err, &codedErr) {
		return codedErr.Details
	}
	return nil
}

// ExecutionFailed creates an ErrExecutionFailed error. A nil exitCode means the
// process did not report one (it could not start, or was killed by a signal).
func ExecutionFailed(exitCode *int, cause error) *Error {
	var e *Error
	if exitCode != nil {
		e = Newf(ErrExecutionFailed, "failed to execute: code `%d`", *exitCode).
			WithDetail(DetailExitCode, *exitCode)
	} else {
		e = New(ErrExecutionFailed, "failed to execute")
	}
	e.Wrapped = cause
	return e
}

// ExitCode returns the child exit code carried by an ErrExecutionFailed error
func ExitCode(err error) (int, bool) {
	var codedErr *Error
	if !errors.As(err, &codedErr) || codedErr.Code != ErrExecutionFailed {
		return 0, false
	}
	code, ok := codedErr.Details[DetailExitCode].(int)
	return code, ok
}
