package service

import (
	"github.com/vibe-guide/internal/catalog"
	apperrors "github.com/vibe-guide/internal/errors"
	"github.com/vibe-guide/internal/models"
	"github.com/vibe-guide/internal/types"
)

// RecommendationService builds the recommendations screen
type RecommendationService struct {
	catalog  catalog.Provider
	settings SettingsReader
	saved    SavedReader
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(provider catalog.Provider, settings SettingsReader, saved SavedReader) *RecommendationService {
	return &RecommendationService{
		catalog:  provider,
		settings: settings,
		saved:    saved,
	}
}

// VibeSummary is one entry of the vibe picker
type VibeSummary struct {
	Key   types.VibeKey `json:"key"`
	Label string        `json:"label"`
	Image string        `json:"image,omitempty"`
	Count int           `json:"count"`
}

// Spot is a location as shown in a list, with its bookmark state
type Spot struct {
	models.Location
	Saved     bool   `json:"saved"`
	ShareText string `json:"shareText"`
}

// Recommendations is the content of the recommendations screen
type Recommendations struct {
	CategoriesOn bool            `json:"categoriesOn"`
	Vibe         *VibeSummary    `json:"vibe,omitempty"` // selected vibe, categories mode only
	ShowLimit    types.ShowLimit `json:"showLimit"`
	Spots        []Spot          `json:"spots"`
}

// Vibes lists the vibes in catalog order
func (s *RecommendationService) Vibes() []VibeSummary {
	vibes := s.catalog.Catalog().Vibes
	out := make([]VibeSummary, 0, len(vibes))
	for _, v := range vibes {
		out = append(out, summarize(v))
	}
	return out
}

// Recommend returns the spots to show. With categories on, that is the
// items of vibeKey (the first vibe when empty). With categories off, the
// whole catalog is flattened and capped by the show limit; vibeKey is ignored.
func (s *RecommendationService) Recommend(vibeKey types.VibeKey) (*Recommendations, error) {
	settings := s.settings.Get()
	c := s.catalog.Catalog()

	result := &Recommendations{
		CategoriesOn: settings.CategoriesOn,
		ShowLimit:    settings.ShowLimit,
	}

	if !settings.CategoriesOn {
		items := catalog.ApplyShowLimit(catalog.FlattenCatalog(c), settings.ShowLimit)
		result.Spots = s.spots(items)
		return result, nil
	}

	if len(c.Vibes) == 0 {
		result.Spots = []Spot{}
		return result, nil
	}

	vibe := &c.Vibes[0]
	if vibeKey != "" {
		var ok bool
		vibe, ok = c.Vibe(vibeKey)
		if !ok {
			return nil, apperrors.NewNotFoundError("vibe", string(vibeKey))
		}
	}

	summary := summarize(*vibe)
	result.Vibe = &summary
	result.Spots = s.spots(vibe.Items)
	return result, nil
}

func (s *RecommendationService) spots(items []models.Location) []Spot {
	out := make([]Spot, 0, len(items))
	for _, loc := range items {
		out = append(out, Spot{
			Location:  loc,
			Saved:     s.saved.IsSaved(loc.ID),
			ShareText: catalog.ShareLocation(loc),
		})
	}
	return out
}

func summarize(v models.Vibe) VibeSummary {
	return VibeSummary{
		Key:   v.Key,
		Label: v.Label,
		Image: v.Image,
		Count: len(v.Items),
	}
}
