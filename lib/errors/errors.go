// Package errors provides structured error types for scratchpool.
//
// This package provides:
//   - Sentinel errors for the broad error categories every package wraps
//   - Error codes for categorizing failures in CLI and diagnostic output
//   - Error wrapping with context preservation
//   - Domain-tagged errors (via samber/oops) that keep errors.Is working
//     against the sentinels
package errors

import (
	"errors"
	"fmt"

	"github.com/samber/oops"
)

// Error codes for categorizing errors. The standard range follows JSON-RPC 2.0,
// with custom codes in the -32000 to -32099 range.
const (
	// Standard JSON-RPC 2.0 error codes
	CodeInvalidParams = -32602 // Invalid parameters
	CodeInternal      = -32603 // Internal error

	// Application-specific error codes (-32000 to -32099)
	CodeConflict      = -32006 // Resource conflict
	CodeConfiguration = -32011 // Configuration rejected
	CodeUnsupported   = -32012 // Feature not compiled in or not supported
)

// Sentinel errors for common error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrAlreadyExists indicates a resource already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInternal indicates an internal error.
	ErrInternal = errors.New("internal error")

	// ErrConfiguration indicates a configuration error.
	ErrConfiguration = errors.New("configuration error")

	// ErrUnsupported indicates the requested feature is unavailable in this build.
	ErrUnsupported = errors.New("unsupported")
)

// Error is a structured error with a code and safe message.
type Error struct {
	// Code is the error code for categorization
	Code int `json:"code"`
	// Message is a safe, user-facing error message
	Message string `json:"message"`
	// Err is the underlying error (not exposed in output)
	Err error `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// SafeMessage returns the error message without internal details.
func (e *Error) SafeMessage() string {
	return e.Message
}

// FromSentinel creates a structured error from an error wrapping one of the
// sentinels. The code and safe message are derived from the sentinel; the
// full error stays available through Err.
func FromSentinel(err error) *Error {
	if err == nil {
		return nil
	}

	code := CodeOf(err)
	return &Error{
		Code:    code,
		Message: safeMessages[code],
		Err:     err,
	}
}

// safeMessages are the user-facing messages for each code.
var safeMessages = map[int]string{
	CodeInvalidParams: "invalid input",
	CodeInternal:      "internal error",
	CodeConflict:      "already exists",
	CodeConfiguration: "invalid configuration",
	CodeUnsupported:   "not supported",
}

// Describe tags err with the domain that produced it and optional key/value
// context. The result still matches the wrapped sentinels with errors.Is.
func Describe(domain string, err error, kv ...any) error {
	if err == nil {
		return nil
	}
	log.WithField("domain", domain).WithError(err).Debug("describing error")
	return oops.
		In(domain).
		Code(CodeName(CodeOf(err))).
		With(kv...).
		Wrap(err)
}

// CodeOf maps an error to the code of the first sentinel it wraps.
func CodeOf(err error) int {
	var structured *Error
	switch {
	case errors.As(err, &structured):
		return structured.Code
	case errors.Is(err, ErrAlreadyExists):
		return CodeConflict
	case errors.Is(err, ErrInvalidInput):
		return CodeInvalidParams
	case errors.Is(err, ErrConfiguration):
		return CodeConfiguration
	case errors.Is(err, ErrUnsupported):
		return CodeUnsupported
	default:
		return CodeInternal
	}
}

// CodeName returns a short stable name for an error code.
func CodeName(code int) string {
	switch code {
	case CodeInvalidParams:
		return "invalid_params"
	case CodeConflict:
		return "conflict"
	case CodeConfiguration:
		return "configuration"
	case CodeUnsupported:
		return "unsupported"
	default:
		return "internal"
	}
}

// IsConfiguration returns true if the error indicates a rejected configuration.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

