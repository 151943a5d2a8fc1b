package models

import (
	"github.com/vibe-guide/internal/types"
)

// Settings holds the user's display preferences
type Settings struct {
	// CategoriesOn groups recommendations by vibe before display
	CategoriesOn bool `json:"categoriesOn"`
	// ShowLimit caps the flattened list; ignored while CategoriesOn is true
	ShowLimit types.ShowLimit `json:"showLimit"`
}

// DefaultSettings returns the settings used when nothing was persisted
func DefaultSettings() Settings {
	return Settings{
		CategoriesOn: true,
		ShowLimit:    types.All(),
	}
}
