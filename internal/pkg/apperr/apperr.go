package apperr

import (
	"errors"
	"fmt"
)

// Sentinels for the failure kinds repositories and services can surface.
// Callers branch with errors.Is; everything else rides along wrapped.
var (
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound marks a lookup that matched no record.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation.
	ErrConflict = errors.New("conflict")
	// ErrInvalidTransition marks an illegal payment-status transition.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrUnauthorized marks a failed credential or token check.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks an ownership/permission failure.
	ErrForbidden = errors.New("forbidden")
	// ErrPersistence marks a store failure or timeout. Retryable by the
	// caller; operations guarded by the idempotency key are safe to replay.
	ErrPersistence = errors.New("persistence failure")
)

// Error carries the entity and operation a failure belongs to, so upstream
// layers can log and respond without parsing message strings.
type Error struct {
	Entity string
	Op     string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Entity != "" && e.Op != "" {
		return fmt.Sprintf("%s.%s: %v", e.Entity, e.Op, e.Err)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "internal error"
}

func (e *Error) Unwrap() error { return e.Err }

// E wraps err with entity/operation context. A nil err returns nil so call
// sites can wrap unconditionally.
func E(entity, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Entity: entity, Op: op, Err: err}
}

// Validation builds a validation failure with a caller-facing message.
func Validation(entity, op, msg string) error {
	return &Error{Entity: entity, Op: op, Err: fmt.Errorf("%w: %s", ErrValidation, msg)}
}

// Persistence wraps a store-level error so it is surfaced, never swallowed.
func Persistence(entity, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Entity: entity, Op: op, Err: fmt.Errorf("%w: %v", ErrPersistence, err)}
}

func IsValidation(err error) bool        { return errors.Is(err, ErrValidation) }
func IsUnauthorized(err error) bool      { return errors.Is(err, ErrUnauthorized) }
func IsForbidden(err error) bool         { return errors.Is(err, ErrForbidden) }
func IsNotFound(err error) bool          { return errors.Is(err, ErrNotFound) }
func IsConflict(err error) bool          { return errors.Is(err, ErrConflict) }
func IsInvalidTransition(err error) bool { return errors.Is(err, ErrInvalidTransition) }
func IsPersistence(err error) bool       { return errors.Is(err, ErrPersistence) }
