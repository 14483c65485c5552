package convert

import (
	"fmt"

	"scrapper/core/retry"
	"scrapper/feature/scrapping/models"
)

// Error is a fatal conversion failure.
type Error struct {
	Condition retry.Condition
	Kind      models.EntityKind
	Field     string
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to convert %s field %s (%s): %v", e.Kind, e.Field, e.Condition, e.Err)
	}
	return fmt.Sprintf("failed to convert %s field %s (%s)", e.Kind, e.Field, e.Condition)
}

func (e *Error) Unwrap() error {
	return e.Err
}
