package util

import (
	"fmt"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// ValidateRequired checks if a string value is not empty
func ValidateRequired(value, fieldName string) error {
	if value == "" {
		return ValidationError{Field: fieldName, Message: "cannot be empty"}
	}
	return nil
}

// ValidatePresent checks that a decoded field was present and not null
func ValidatePresent[T any](value *T, fieldName string) error {
	if value == nil {
		return ValidationError{Field: fieldName, Message: "is required"}
	}
	return nil
}

// ValidateUnique records value in seen and fails when it was already there
func ValidateUnique(seen map[string]string, value, fieldName string) error {
	if first, dup := seen[value]; dup {
		return ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("duplicate value %q (first seen at %s)", value, first),
		}
	}
	seen[value] = fieldName
	return nil
}
