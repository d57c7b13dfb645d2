package game

import (
	"errors"
	"fmt"
)

// ValidationError rejects an operation whose inputs make no sense:
// unknown IDs, level gates, self-targeting. The caller's state is
// untouched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validationf builds a ValidationError.
func Validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// InsufficientResourceError rejects an operation the player cannot
// afford. Need and Have let the transport render a useful message.
type InsufficientResourceError struct {
	Resource string // "energy", "batons", or an item ID
	Need     int
	Have     int
}

func (e *InsufficientResourceError) Error() string {
	return fmt.Sprintf("insufficient %s: need %d, have %d", e.Resource, e.Need, e.Have)
}

// StateConflictError rejects an operation against the wrong state: a
// dungeon on cooldown, a finished run, an already-claimed reward.
type StateConflictError struct {
	Reason string
}

func (e *StateConflictError) Error() string {
	return e.Reason
}

// Conflictf builds a StateConflictError.
func Conflictf(format string, args ...any) error {
	return &StateConflictError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation rejection.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsInsufficientResource reports whether err is a resource rejection.
func IsInsufficientResource(err error) bool {
	var e *InsufficientResourceError
	return errors.As(err, &e)
}

// IsStateConflict reports whether err is a state conflict.
func IsStateConflict(err error) bool {
	var e *StateConflictError
	return errors.As(err, &e)
}
