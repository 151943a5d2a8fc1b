package models

import (
	"time"

	"github.com/vibe-guide/internal/types"
)

// SavedLocation is the denormalised record kept for a bookmarked location,
// enough to render the saved list without joining the catalog.
type SavedLocation struct {
	ID       string        `json:"-"`
	Title    string        `json:"title"`
	Lat      float64       `json:"lat"`
	Lng      float64       `json:"lng"`
	ImageRef string        `json:"imageRef,omitempty"`
	Vibe     types.VibeKey `json:"vibe,omitempty"`
	SavedAt  time.Time     `json:"savedAt"`
}

// NewSavedLocation captures the display fields of loc
func NewSavedLocation(loc Location, at time.Time) SavedLocation {
	return SavedLocation{
		ID:       loc.ID,
		Title:    loc.Title,
		Lat:      loc.Lat,
		Lng:      loc.Lng,
		ImageRef: loc.Image,
		Vibe:     loc.Vibe,
		SavedAt:  at,
	}
}

// Location rebuilds a Location from the saved record
func (s SavedLocation) Location() Location {
	return Location{
		ID:    s.ID,
		Vibe:  s.Vibe,
		Title: s.Title,
		Lat:   s.Lat,
		Lng:   s.Lng,
		Image: s.ImageRef,
	}
}

// SavedSet maps location ID to its saved record
type SavedSet map[string]SavedLocation

// Has reports membership
func (s SavedSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Clone returns an independent copy
func (s SavedSet) Clone() SavedSet {
	out := make(SavedSet, len(s))
	for id, rec := range s {
		out[id] = rec
	}
	return out
}
