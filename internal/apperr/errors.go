// Package apperr defines the error kinds shared by every layer of the application.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrPersistence     = errors.New("persistence error")
	ErrDegenerateInput = errors.New("degenerate input")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrConflict        = errors.New("conflict")
)

// Kind names used on the wire
const (
	KindValidation      = "validation"
	KindNotFound        = "not_found"
	KindForbidden       = "forbidden"
	KindPersistence     = "persistence"
	KindDegenerateInput = "degenerate_input"
	KindUnauthenticated = "unauthenticated"
	KindConflict        = "conflict"
	KindInternal        = "internal"
)

// Validation builds an ErrValidation with a formatted message
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFound builds an ErrNotFound for the named resource
func NotFound(resource string, id int64) error {
	return fmt.Errorf("%w: %s %d", ErrNotFound, resource, id)
}

// Forbidden builds an ErrForbidden for the named resource
func Forbidden(resource string, id int64) error {
	return fmt.Errorf("%w: %s %d is not owned by the acting user", ErrForbidden, resource, id)
}

// Persistence wraps a store failure. The original error stays reachable through errors.Is/As.
func Persistence(op string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", ErrPersistence, op, err)
}

// KindOf classifies err into one of the wire kinds
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrDegenerateInput):
		return KindDegenerateInput
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrPersistence):
		return KindPersistence
	default:
		return KindInternal
	}
}
