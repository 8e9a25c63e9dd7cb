// Package errors defines common error types for the application.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the application.
const (
	CodeUnknown        = "UNKNOWN_ERROR"
	CodeFormatError    = "FORMAT_ERROR"
	CodeUnknownState   = "UNKNOWN_STATE"
	CodeTruncatedInput = "TRUNCATED_INPUT"
	CodeInvalidInput   = "INVALID_INPUT"
	CodeNotFound       = "NOT_FOUND"
	CodeReadError      = "READ_ERROR"
	CodeConfigError    = "CONFIG_ERROR"
)

// AppError represents an application error with a code and message.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches the target.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError.
func New(code string, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with an AppError.
func Wrap(code string, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error instances.
var (
	ErrFormatError    = New(CodeFormatError, "malformed line")
	ErrUnknownState   = New(CodeUnknownState, "unknown thread state")
	ErrTruncatedInput = New(CodeTruncatedInput, "input ends inside a thread block")
	ErrInvalidInput   = New(CodeInvalidInput, "invalid input")
	ErrNotFound       = New(CodeNotFound, "resource not found")
	ErrReadError      = New(CodeReadError, "read error")
	ErrConfigError    = New(CodeConfigError, "configuration error")
)

// IsFormatError checks if the error is a format error.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrFormatError)
}

// IsUnknownStateError checks if the error is an unknown thread state error.
func IsUnknownStateError(err error) bool {
	return errors.Is(err, ErrUnknownState)
}

// IsTruncatedInputError checks if the error is a truncated input error.
func IsTruncatedInputError(err error) bool {
	return errors.Is(err, ErrTruncatedInput)
}

// IsNotFoundError checks if the error is a not found error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsParseError reports whether err belongs to any of the dump parsing categories.
func IsParseError(err error) bool {
	return IsFormatError(err) || IsUnknownStateError(err) || IsTruncatedInputError(err)
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// GetErrorMessage extracts the error message from an error.
func GetErrorMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
