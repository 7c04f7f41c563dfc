package alarm

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed alarm fields or request payloads.
	ErrValidation = errors.New("validation failed")
	// ErrPersistence marks a failed read or write of the persistence backend.
	ErrPersistence = errors.New("persistence failed")
	// ErrPlayback marks a failure of the audio primitive.
	ErrPlayback = errors.New("playback failed")
	// ErrNotFound marks an alarm id that does not exist.
	ErrNotFound = errors.New("alarm not found")
)

// ValidationError describes a single rejected field.
type ValidationError struct {
	// Field is the name of the offending field as it appears on the wire.
	Field string
	// Reason is a human-readable description of the problem.
	Reason string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// Is makes every ValidationError match ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// MissingField returns a ValidationError for an absent required field.
func MissingField(field string) error {
	return &ValidationError{
		Field:  field,
		Reason: "is required",
	}
}

// InvalidField returns a ValidationError with a formatted reason.
func InvalidField(field, format string, args ...any) error {
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}

// Persistence tags err with ErrPersistence unless it already carries it.
func Persistence(err error) error {
	if err == nil || errors.Is(err, ErrPersistence) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrPersistence, err)
}
