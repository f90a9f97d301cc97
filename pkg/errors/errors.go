// Package errors provides structured error types for gamesolver.
//
// Every public entry point of the solver packages reports precondition failures
// as an [*Error] carrying a machine-readable [Code], so the CLI and the HTTP
// API can map them to exit statuses and response codes without string matching.
//
// # Error Codes
//
// Codes follow a hierarchical naming convention:
//   - MALFORMED_*, INVALID_*: rejected input (arenas, priorities, requests)
//   - COUNTER_OVERFLOW, STATE_SPACE_*: limits of the safety reduction
//   - BACKEND: a symbolic backend violated its contract
//   - NOT_FOUND, INTERNAL_*: resource and unexpected failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedArena, "node %d has no successors", id)
//	if errors.Is(err, errors.ErrCodeMalformedArena) {
//	    // reject the arena
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidFormat, origErr, "line %d", n)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Arena and input errors
	ErrCodeMalformedArena  Code = "MALFORMED_ARENA"
	ErrCodeInvalidPriority Code = "INVALID_PRIORITY"
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidSolver   Code = "INVALID_SOLVER"

	// Safety reduction limits
	ErrCodeCounterOverflow    Code = "COUNTER_OVERFLOW"
	ErrCodeStateSpaceExceeded Code = "STATE_SPACE_EXCEEDED"

	// Symbolic backend contract violations
	ErrCodeBackend Code = "BACKEND"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeTimeout     Code = "TIMEOUT"
)

// Error carries a [Code] next to a message and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error formats as "CODE: message" or "CODE: message: cause".
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches code and a message to cause. The cause stays reachable
// through errors.Is and errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether any *Error in the chain of err carries code, so an
// INVALID_FORMAT wrapped by a later stage is still found.
func Is(err error, code Code) bool {
	var e *Error
	for errors.As(err, &e) {
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in the chain of err, or ""
// if there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage renders err without codes or the stage prefixes added by
// fmt.Errorf above the outermost *Error: "line 3: want 3 or 4 fields, got 2".
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}

// IsInputError reports whether err was caused by the caller's input rather
// than by the solver or its infrastructure. The server maps these to 4xx.
func IsInputError(err error) bool {
	switch GetCode(err) {
	case ErrCodeMalformedArena, ErrCodeInvalidPriority, ErrCodeInvalidInput,
		ErrCodeInvalidFormat, ErrCodeInvalidSolver, ErrCodeStateSpaceExceeded:
		return true
	}
	return false
}
