package integrate

import (
	"fmt"

	apperrors "scrapper/core/errors"
	"scrapper/core/retry"
)

// Error is a storage failure. The transaction it happened in was rolled back.
type Error struct {
	Op    string
	Table string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Condition is always database_error.
func (e *Error) Condition() retry.Condition {
	return retry.ConditionDatabaseError
}

// ConflictError is returned by the error strategy when the record exists.
type ConflictError struct {
	Table      string
	ExternalID int
	ExistingID uint
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with external id %d already exists (id %d)", e.Table, e.ExternalID, e.ExistingID)
}

// Is matches the shared conflict sentinel.
func (e *ConflictError) Is(target error) bool {
	return target == apperrors.ErrConflict
}

func (e *ConflictError) Condition() retry.Condition {
	return retry.ConditionConflict
}
