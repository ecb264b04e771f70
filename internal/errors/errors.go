package errors

import (
	"errors"
	"fmt"
)

// Code represents an error code for categorizing errors
type Code string

const (
	// CodeUnknown indicates an unknown error
	CodeUnknown Code = "unknown"

	// CodeUnsupportedExpression indicates a dice expression outside the grammar
	CodeUnsupportedExpression Code = "unsupported_expression"

	// CodeUnknownRerollMode indicates a re-roll mode outside {none, ones, failed}
	CodeUnknownRerollMode Code = "unknown_reroll_mode"

	// CodeInvalidConfig indicates a structurally invalid roster or preset
	CodeInvalidConfig Code = "invalid_config"

	// CodeNotFound indicates a requested resource was not found
	CodeNotFound Code = "not_found"

	// CodeInternal indicates internal system error
	CodeInternal Code = "internal"
)

// Error represents an application error with a code
type Error struct {
	// Code is the error code
	Code Code

	// Message is the error message
	Message string

	// Cause is the wrapped error
	Cause error
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	// If it's already our error type, preserve the code
	var calcErr *Error
	if errors.As(err, &calcErr) {
		return &Error{
			Code:    calcErr.Code,
			Message: message,
			Cause:   err,
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// Helper functions for common error types

// UnsupportedExpressionf creates a formatted unsupported expression error
func UnsupportedExpressionf(format string, args ...any) *Error {
	return Newf(CodeUnsupportedExpression, format, args...)
}

// UnknownRerollModef creates a formatted unknown reroll mode error
func UnknownRerollModef(format string, args ...any) *Error {
	return Newf(CodeUnknownRerollMode, format, args...)
}

// InvalidConfig creates an invalid config error
func InvalidConfig(message string) *Error {
	return New(CodeInvalidConfig, message)
}

// InvalidConfigf creates a formatted invalid config error
func InvalidConfigf(format string, args ...any) *Error {
	return Newf(CodeInvalidConfig, format, args...)
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// NotFoundf creates a formatted not found error
func NotFoundf(format string, args ...any) *Error {
	return Newf(CodeNotFound, format, args...)
}

// Internal creates an internal error
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// Error checking functions

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	var calcErr *Error
	if errors.As(err, &calcErr) {
		return calcErr.Code == code
	}
	return false
}

// IsUnsupportedExpression checks if the error is an unsupported expression error
func IsUnsupportedExpression(err error) bool {
	return Is(err, CodeUnsupportedExpression)
}

// IsUnknownRerollMode checks if the error is an unknown reroll mode error
func IsUnknownRerollMode(err error) bool {
	return Is(err, CodeUnknownRerollMode)
}

// IsInvalidConfig checks if the error is an invalid config error
func IsInvalidConfig(err error) bool {
	return Is(err, CodeInvalidConfig)
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return Is(err, CodeNotFound)
}

// IsInternal checks if the error is an internal error
func IsInternal(err error) bool {
	return Is(err, CodeInternal)
}

// GetCode returns the error code
func GetCode(err error) Code {
	var calcErr *Error
	if errors.As(err, &calcErr) {
		return calcErr.Code
	}
	return CodeUnknown
}
