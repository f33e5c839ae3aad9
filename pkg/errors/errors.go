// Package errors provides structured error types for seqdiag.
//
// Every failure the diagram engine, the sinks and the CLI can produce carries a
// machine-readable [Code]. Errors are usage errors: they are surfaced
// immediately and never retried, so callers typically only need [Is] to tell
// them apart.
//
// # Error Codes
//
//   - UNKNOWN_PARTICIPANT, DUPLICATE_PARTICIPANT: participant registry misuse
//   - NO_OPEN_BLOCK, DEGENERATE_BLOCK, UNCLOSED_BLOCK: block lifecycle misuse
//   - FINALIZED_DIAGRAM, NOT_FINALIZED: drawing/export phase misuse
//   - UNSUPPORTED_FORMAT, IO_WRITE: export failures
//   - INVALID_*: argument and configuration validation
//
// # Usage
//
//	x, err := d.ParticipantX("hubb")
//	if errors.Is(err, errors.ErrCodeUnknownParticipant) {
//	    // fix the calling sequence
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeIOWrite, origErr, "write %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Participant registry
	ErrCodeUnknownParticipant   Code = "UNKNOWN_PARTICIPANT"
	ErrCodeDuplicateParticipant Code = "DUPLICATE_PARTICIPANT"

	// Block lifecycle
	ErrCodeNoOpenBlock     Code = "NO_OPEN_BLOCK"
	ErrCodeDegenerateBlock Code = "DEGENERATE_BLOCK"
	ErrCodeUnclosedBlock   Code = "UNCLOSED_BLOCK"

	// Diagram phase
	ErrCodeFinalized    Code = "FINALIZED_DIAGRAM"
	ErrCodeNotFinalized Code = "NOT_FINALIZED"

	// Export
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"
	ErrCodeIOWrite           Code = "IO_WRITE"

	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidColor  Code = "INVALID_COLOR"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
// It unwraps the error chain looking for an *Error with a matching code,
// so a FINALIZED_DIAGRAM wrapped inside an IO_WRITE is still found.
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
		if e.Cause != nil {
			return fmt.Sprintf("%s: %s", e.Message, UserMessage(e.Cause))
		}
		return e.Message
	}
	return err.Error()
}
