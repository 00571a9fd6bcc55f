package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Sentinel errors shared by all store operations. Callers match with
// errors.Is and map them onto transport-level responses.
var (
	// ErrNotFound is returned when an operation addresses a record that
	// does not exist. Mutations never become silent no-ops.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a mutation would violate a uniqueness
	// or reference constraint, such as deleting a device type that
	// deployments still point at.
	ErrConflict = errors.New("constraint violation")
)

// ValidationError rejects a request before any database mutation happens.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err carries a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func invalidf(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// translate maps driver-level errors onto the store's sentinels so that
// callers never need to import gorm to classify a failure.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrConflict
	}
	return err
}
