package services

import (
	"fmt"

	"trifecta/internal/validation"
)

// ValidationError reports every violated field from a server-side schema
// run. It maps to a structured 400 response; nothing is persisted when it is
// returned.
type ValidationError struct {
	Fields []validation.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %d field(s) invalid", len(e.Fields))
}

// NewValidationError creates a ValidationError from a validation result
func NewValidationError(res validation.Result) *ValidationError {
	return &ValidationError{Fields: res.Errors}
}
