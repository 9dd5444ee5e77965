package provider

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a result id does not resolve to a bookmark
// in the current index.
var ErrNotFound = errors.New("result not found")

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}
