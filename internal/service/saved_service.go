package service

import (
	"github.com/vibe-guide/internal/catalog"
	apperrors "github.com/vibe-guide/internal/errors"
	"github.com/vibe-guide/internal/models"
)

// SavedService backs the saved list and the bookmark buttons on every screen
type SavedService struct {
	catalog catalog.Provider
	saved   SavedRepository
}

// NewSavedService creates a new saved service
func NewSavedService(provider catalog.Provider, saved SavedRepository) *SavedService {
	return &SavedService{catalog: provider, saved: saved}
}

// SavedEntry is one row of the saved list
type SavedEntry struct {
	models.SavedLocation
	ID        string `json:"id"`
	InCatalog bool   `json:"inCatalog"`
	ShareText string `json:"shareText"`
}

// ToggleResult reports the outcome of a bookmark toggle
type ToggleResult struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Saved bool   `json:"saved"`
}

// List returns the saved locations, newest first
func (s *SavedService) List() []SavedEntry {
	c := s.catalog.Catalog()
	records := s.saved.List()

	out := make([]SavedEntry, 0, len(records))
	for _, rec := range records {
		_, inCatalog := c.Location(rec.ID)
		out = append(out, SavedEntry{
			SavedLocation: rec,
			ID:            rec.ID,
			InCatalog:     inCatalog,
			ShareText:     catalog.ShareText(rec.Title, rec.Lat, rec.Lng),
		})
	}
	return out
}

// Toggle flips the bookmark on id. The catalog is consulted first; an ID
// that is no longer in the catalog can still be removed from the saved list.
func (s *SavedService) Toggle(id string) (*ToggleResult, error) {
	loc, ok := s.catalog.Catalog().Location(id)
	if !ok {
		rec, saved := s.saved.Snapshot()[id]
		if !saved {
			return nil, apperrors.NewNotFoundError("location", id)
		}
		loc = rec.Location()
	}

	nowSaved := s.saved.Toggle(loc)
	return &ToggleResult{ID: id, Title: loc.Title, Saved: nowSaved}, nil
}
