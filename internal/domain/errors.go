package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Every error returned by the service layer wraps one of these.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvariantViolation = errors.New("invariant violation")
	ErrNotFound           = errors.New("not found")
	ErrUnknownStation     = errors.New("unknown station")
	ErrIOFailure          = errors.New("i/o failure")
	ErrMalformedRecord    = errors.New("malformed record")
	ErrCycleDetected      = errors.New("cycle detected")
)

// ValidationError wraps a sentinel with the offending field.
type ValidationError struct {
	Field   string
	Value   string
	Wrapped error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value=%q)", e.Wrapped, e.Field, e.Value)
}

func (e *ValidationError) Unwrap() error { return e.Wrapped }

// NewValidationError creates a ValidationError.
func NewValidationError(field, value string, wrapped error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Wrapped: wrapped}
}

// NotFoundError reports a lookup of an entity that does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// MalformedRecordError describes a persisted line that could not be decoded.
type MalformedRecordError struct {
	Line    int
	Section string
	Text    string
	Err     error
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("line %d: invalid data for %s: %q: %v", e.Line, e.Section, e.Text, e.Err)
}

func (e *MalformedRecordError) Unwrap() []error {
	return []error{ErrMalformedRecord, e.Err}
}

// CycleError reports a back-edge found while ordering stations. Path starts
// and ends with the same station.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: %s", ErrCycleDetected, strings.Join(e.Path, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrCycleDetected }

// UnknownStationError reports a connect request naming a station that is not registered.
type UnknownStationError struct {
	ID string
}

func (e *UnknownStationError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownStation, e.ID)
}

func (e *UnknownStationError) Unwrap() error { return ErrUnknownStation }

// IOError wraps a storage failure so it matches ErrIOFailure.
func IOError(op, target string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIOFailure, op, target, err)
}
