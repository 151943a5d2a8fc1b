package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorizedError_Error(t *testing.T) {
	err := NewValidationError("showLimit", "must be non-negative")
	assert.Equal(t, "VALIDATION_FAILED: invalid showLimit: must be non-negative", err.Error())

	cause := stderrors.New("disk full")
	err = NewPersistenceError("app_settings", cause)
	assert.Contains(t, err.Error(), "caused by: disk full")
	assert.ErrorIs(t, err, cause)
}

func TestCategorize(t *testing.T) {
	assert.Nil(t, Categorize(nil))

	notFound := NewNotFoundError("location", "party-9")
	wrapped := fmt.Errorf("lookup: %w", notFound)
	assert.Same(t, notFound, Categorize(wrapped))

	plain := Categorize(stderrors.New("boom"))
	assert.Equal(t, CategorySystem, plain.Category)
	assert.Equal(t, "INTERNAL_ERROR", plain.Code)
}

func TestIsCategory(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		want     bool
	}{
		{"validation", NewValidationError("x", "y"), CategoryValidation, true},
		{"wrapped hydration", fmt.Errorf("init: %w", NewHydrationError("k", nil)), CategoryHydration, true},
		{"wrong category", NewStorageError("load", nil), CategoryValidation, false},
		{"plain error", stderrors.New("plain"), CategoryStorage, false},
		{"nil", nil, CategoryStorage, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsCategory(tt.err, tt.category))
		})
	}

	assert.True(t, IsValidation(NewValidationError("a", "b")))
	assert.True(t, IsNotFound(NewNotFoundError("vibe", "disco")))
}
