// Package validation provides reusable configuration validators for scratchpool.
// All validators follow a consistent pattern: they return nil on success and a
// *Result describing the offending field on failure.
package validation

import (
	"errors"
	"fmt"
	"net"
	"regexp"
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

// Common validation errors. These are sentinel errors that can be checked with errors.Is().
var (
	// ErrRequired indicates a required field is missing or empty.
	ErrRequired = errors.New("field is required")

	// ErrTooLong indicates a string exceeds the maximum length.
	ErrTooLong = errors.New("value exceeds maximum length")

	// ErrInvalidFormat indicates a value doesn't match the expected format.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrOutOfRange indicates a numeric value is outside the allowed range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrInvalidDuration indicates an invalid duration string.
	ErrInvalidDuration = errors.New("invalid duration")
)

// MaxConfigKeyLength is the maximum length for configuration keys such as pool kinds.
const MaxConfigKeyLength = 64

// configKeyPattern matches valid config keys (lowercase letters, digits, underscores).
var configKeyPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Result represents a validation result with field context.
type Result struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface.
func (r *Result) Error() string {
	if r.Field != "" {
		return fmt.Sprintf("%s: %s", r.Field, r.Message)
	}
	return r.Message
}

// Unwrap returns the underlying error for errors.Is() support.
func (r *Result) Unwrap() error {
	return r.Err
}

// NewResult creates a validation result.
func NewResult(field, message string, err error) *Result {
	return &Result{
		Field:   field,
		Message: message,
		Err:     err,
	}
}

// Required validates that a string is non-empty.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return NewResult(field, "is required", ErrRequired)
	}
	return nil
}

// MaxLength validates that a string doesn't exceed the maximum length.
func MaxLength(field, value string, max int) error {
	if utf8.RuneCountInString(value) > max {
		return NewResult(field, fmt.Sprintf("exceeds maximum length of %d characters", max), ErrTooLong)
	}
	return nil
}

// Positive validates that an integer is positive (> 0).
func Positive(field string, value int) error {
	if value <= 0 {
		return NewResult(field, "must be positive", ErrOutOfRange)
	}
	return nil
}

// NonNegative validates that an integer is non-negative (>= 0).
func NonNegative(field string, value int) error {
	if value < 0 {
		return NewResult(field, "must be non-negative", ErrOutOfRange)
	}
	return nil
}

// NonNegativeFloat validates that a float is non-negative (>= 0).
func NonNegativeFloat(field string, value float64) error {
	if value < 0 {
		return NewResult(field, "must be non-negative", ErrOutOfRange)
	}
	return nil
}

// AtMost validates value <= limit, where limit is the value of limitField.
// A limit of zero means "unbounded" and always passes.
func AtMost(field string, value int, limitField string, limit int) error {
	if limit > 0 && value > limit {
		return NewResult(field, fmt.Sprintf("must not exceed %s (%d)", limitField, limit), ErrOutOfRange)
	}
	return nil
}

// OneOf validates that value is one of the allowed values.
func OneOf(field, value string, allowed ...string) error {
	if !slices.Contains(allowed, value) {
		return NewResult(field, fmt.Sprintf("must be one of %s", strings.Join(allowed, ", ")), ErrInvalidFormat)
	}
	return nil
}

// Duration validates a duration string and returns the parsed duration.
func Duration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil // Empty is valid (will use default)
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, NewResult(field, "invalid duration format", ErrInvalidDuration)
	}

	if d < 0 {
		return 0, NewResult(field, "duration cannot be negative", ErrOutOfRange)
	}

	return d, nil
}

// ConfigKey validates a configuration key such as a pool kind name.
func ConfigKey(field, value string) error {
	if err := Required(field, value); err != nil {
		return err
	}

	if err := MaxLength(field, value, MaxConfigKeyLength); err != nil {
		return err
	}

	if !configKeyPattern.MatchString(value) {
		return NewResult(field, "must start with a lowercase letter and contain only lowercase letters, digits, and underscores", ErrInvalidFormat)
	}

	return nil
}

// HostPort validates a host:port address.
func HostPort(field, value string) error {
	if err := Required(field, value); err != nil {
		return err
	}

	_, _, err := net.SplitHostPort(value)
	if err != nil {
		return NewResult(field, "must be in host:port format", ErrInvalidFormat)
	}

	return nil
}

// Errors collects multiple validation errors.
type Errors []error

// Add appends an error to the collection (nil errors are ignored).
func (e *Errors) Add(err error) {
	if err != nil {
		*e = append(*e, err)
	}
}

// Error returns all errors as a single error message.
func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	b.WriteString("multiple validation errors: ")
	for i, err := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(err.Error())
	}
	return b.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e Errors) Unwrap() []error {
	return e
}

// Err returns the collection as an error, or nil when empty.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}
