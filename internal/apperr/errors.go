// Package apperr holds the error kinds shared by the domain services. Services
// wrap these sentinels with context and the HTTP layer maps them to status
// codes with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidArgument  = errors.New("invalid argument")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("resource not found")
	ErrConflict         = errors.New("resource already exists")
)

// Invalid wraps ErrInvalidArgument with a formatted reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// Forbidden wraps ErrPermissionDenied with a formatted reason.
func Forbidden(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPermissionDenied, fmt.Sprintf(format, args...))
}
