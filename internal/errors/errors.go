// Package errors defines the categorised errors used across the guide.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	// CategoryHydration is persisted state that could not be loaded; always recovered locally
	CategoryHydration ErrorCategory = "hydration"
	// CategoryValidation is a rejected input value
	CategoryValidation ErrorCategory = "validation"
	// CategoryPersistence is a failed background write; logged only
	CategoryPersistence ErrorCategory = "persistence"
	// CategoryStorage is a storage backend failure
	CategoryStorage ErrorCategory = "storage"
	// CategoryNotFound is an unknown catalog entry
	CategoryNotFound ErrorCategory = "not_found"
	// CategorySystem is anything else
	CategorySystem ErrorCategory = "system"
)

// CategorizedError represents an error with a category and a stable code
type CategorizedError struct {
	Category ErrorCategory
	Code     string
	Message  string
	Details  map[string]interface{}
	Cause    error
}

// Error implements the error interface
func (e *CategorizedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause
func (e *CategorizedError) Unwrap() error {
	return e.Cause
}

// NewHydrationError reports persisted state under key that could not be restored
func NewHydrationError(key string, cause error) *CategorizedError {
	return &CategorizedError{
		Category: CategoryHydration,
		Code:     "HYDRATION_FAILED",
		Message:  fmt.Sprintf("could not restore %s, using defaults", key),
		Cause:    cause,
		Details: map[string]interface{}{
			"key": key,
		},
	}
}

// NewValidationError reports an invalid value for field
func NewValidationError(field string, reason string) *CategorizedError {
	return &CategorizedError{
		Category: CategoryValidation,
		Code:     "VALIDATION_FAILED",
		Message:  fmt.Sprintf("invalid %s: %s", field, reason),
		Details: map[string]interface{}{
			"field":  field,
			"reason": reason,
		},
	}
}

// NewPersistenceError reports a background write of key that did not land
func NewPersistenceError(key string, cause error) *CategorizedError {
	return &CategorizedError{
		Category: CategoryPersistence,
		Code:     "PERSISTENCE_FAILED",
		Message:  fmt.Sprintf("could not persist %s", key),
		Cause:    cause,
		Details: map[string]interface{}{
			"key": key,
		},
	}
}

// NewStorageError reports a backend failure during operation
func NewStorageError(operation string, cause error) *CategorizedError {
	return &CategorizedError{
		Category: CategoryStorage,
		Code:     "STORAGE_ERROR",
		Message:  fmt.Sprintf("storage error during %s", operation),
		Cause:    cause,
		Details: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string, id string) *CategorizedError {
	return &CategorizedError{
		Category: CategoryNotFound,
		Code:     "NOT_FOUND",
		Message:  fmt.Sprintf("%s not found: %s", resource, id),
		Details: map[string]interface{}{
			"resource": resource,
			"id":       id,
		},
	}
}

// NewInternalError creates an internal error
func NewInternalError(message string, cause error) *CategorizedError {
	return &CategorizedError{
		Category: CategorySystem,
		Code:     "INTERNAL_ERROR",
		Message:  message,
		Cause:    cause,
	}
}

// Categorize categorizes an existing error
func Categorize(err error) *CategorizedError {
	if err == nil {
		return nil
	}

	var catErr *CategorizedError
	if stderrors.As(err, &catErr) {
		return catErr
	}

	return NewInternalError("unexpected error", err)
}

// IsCategory reports whether err carries the given category anywhere in its chain
func IsCategory(err error, category ErrorCategory) bool {
	var catErr *CategorizedError
	if !stderrors.As(err, &catErr) {
		return false
	}
	return catErr.Category == category
}

// IsValidation reports whether err is a validation failure
func IsValidation(err error) bool {
	return IsCategory(err, CategoryValidation)
}

// IsNotFound reports whether err is a not found error
func IsNotFound(err error) bool {
	return IsCategory(err, CategoryNotFound)
}
