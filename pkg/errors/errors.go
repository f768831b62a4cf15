// Package errors provides structured error types for the skyline pipeline.
//
// Every stage of the chart pipeline reports failures as an [*Error] carrying a
// machine-readable [Code], so the CLI and the HTTP server can map failures to
// exit codes and status codes without string matching.
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Missing lookup keys or files
//   - MALFORMED_RECORD, EMPTY_DATASET: Problems with the activity data itself
//   - DATA_SOURCE: Failures passed through from a record loader
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedRecord, "record %d: start_time is not numeric", i)
//	if errors.Is(err, errors.ErrCodeMalformedRecord) {
//	    // Handle bad input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeDataSource, origErr, "load %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidFormat  Code = "INVALID_FORMAT"
	ErrCodeInvalidVariant Code = "INVALID_VARIANT"
	ErrCodeInvalidPath    Code = "INVALID_PATH"
	ErrCodeInvalidKey     Code = "INVALID_KEY"

	// Data errors
	ErrCodeMalformedRecord Code = "MALFORMED_RECORD"
	ErrCodeEmptyDataset    Code = "EMPTY_DATASET"
	ErrCodeDataSource      Code = "DATA_SOURCE"

	// Lookup errors
	ErrCodeDeadlineNotFound Code = "DEADLINE_NOT_FOUND"
	ErrCodeFileNotFound     Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code, so a
// MALFORMED_RECORD wrapped by the pipeline is still reported as malformed.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
