package service

import (
	"github.com/vibe-guide/internal/models"
)

// Store interfaces for dependency injection

// SettingsReader exposes the current display preferences
type SettingsReader interface {
	Get() models.Settings
}

// SavedReader answers bookmark lookups
type SavedReader interface {
	IsSaved(id string) bool
}

// SavedRepository is the bookmark store as the saved list sees it
type SavedRepository interface {
	SavedReader
	Toggle(loc models.Location) bool
	List() []models.SavedLocation
	Snapshot() models.SavedSet
}
