package service

import (
	"github.com/vibe-guide/internal/catalog"
	apperrors "github.com/vibe-guide/internal/errors"
	"github.com/vibe-guide/internal/models"
	"github.com/vibe-guide/internal/types"
)

const (
	kmPerDegree = 111.0
	// FocusRadiusKm is how much of the map a focused marker gets around it
	FocusRadiusKm = 1.6
)

// MapService builds the map screen
type MapService struct {
	catalog catalog.Provider
	saved   SavedReader
}

// NewMapService creates a new map service
func NewMapService(provider catalog.Provider, saved SavedReader) *MapService {
	return &MapService{catalog: provider, saved: saved}
}

// Region is the visible map window
type Region struct {
	Lat      float64 `json:"latitude"`
	Lng      float64 `json:"longitude"`
	LatDelta float64 `json:"latitudeDelta"`
	LngDelta float64 `json:"longitudeDelta"`
}

// RegionAround centres a window of roughly km kilometres on lat/lng.
// aspect is the viewport width divided by its height.
func RegionAround(lat, lng, km, aspect float64) Region {
	if aspect <= 0 {
		aspect = 1
	}
	return Region{
		Lat:      lat,
		Lng:      lng,
		LatDelta: km / kmPerDegree,
		LngDelta: km / kmPerDegree * aspect,
	}
}

// Marker is a pin on the map
type Marker struct {
	models.Location
	Saved   bool   `json:"saved"`
	MapsURL string `json:"mapsUrl"`
}

// MapRequest selects what the map shows
type MapRequest struct {
	// FocusID opens the sheet on this location; empty means the first marker
	FocusID string
	// Cluster restricts the markers to these IDs; empty means the whole catalog
	Cluster  []string
	Platform types.Platform
	Aspect   float64
}

// MapView is the content of the map screen
type MapView struct {
	Markers   []Marker `json:"markers"`
	Focus     *Marker  `json:"focus,omitempty"`
	Region    *Region  `json:"region,omitempty"`
	ShareText string   `json:"shareText,omitempty"`
}

// View returns the markers, the focused marker and the region around it
func (s *MapService) View(req MapRequest) (*MapView, error) {
	c := s.catalog.Catalog()

	locations := catalog.FlattenCatalog(c)
	if len(req.Cluster) > 0 {
		locations = make([]models.Location, 0, len(req.Cluster))
		for _, id := range req.Cluster {
			loc, ok := c.Location(id)
			if !ok {
				return nil, apperrors.NewNotFoundError("location", id)
			}
			locations = append(locations, loc)
		}
	}

	view := &MapView{Markers: make([]Marker, 0, len(locations))}
	for _, loc := range locations {
		view.Markers = append(view.Markers, s.marker(loc, req.Platform))
	}

	var focus *Marker
	switch {
	case req.FocusID != "":
		loc, ok := c.Location(req.FocusID)
		if !ok {
			return nil, apperrors.NewNotFoundError("location", req.FocusID)
		}
		m := s.marker(loc, req.Platform)
		focus = &m
	case len(view.Markers) > 0:
		m := view.Markers[0]
		focus = &m
	}

	if focus != nil {
		region := RegionAround(focus.Lat, focus.Lng, FocusRadiusKm, req.Aspect)
		view.Focus = focus
		view.Region = &region
		view.ShareText = catalog.ShareLocation(focus.Location)
	}
	return view, nil
}

func (s *MapService) marker(loc models.Location, platform types.Platform) Marker {
	return Marker{
		Location: loc,
		Saved:    s.saved.IsSaved(loc.ID),
		MapsURL:  catalog.MapsURL(platform, loc),
	}
}

// ShareLocation returns the share message for a catalog location
func (s *MapService) ShareLocation(id string) (string, error) {
	loc, ok := s.catalog.Catalog().Location(id)
	if !ok {
		return "", apperrors.NewNotFoundError("location", id)
	}
	return catalog.ShareLocation(loc), nil
}
