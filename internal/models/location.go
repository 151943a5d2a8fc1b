// Package models provides the data models for the guide.
package models

import (
	"github.com/vibe-guide/internal/types"
)

// Location is a point of interest in the catalog
type Location struct {
	ID          string        `json:"id" yaml:"-"`
	Vibe        types.VibeKey `json:"vibe" yaml:"-"`
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"desc,omitempty" yaml:"desc"`
	Lat         float64       `json:"lat" yaml:"lat"`
	Lng         float64       `json:"lng" yaml:"lng"`
	Image       string        `json:"image,omitempty" yaml:"image"`
}

// Vibe is a thematic group of locations
type Vibe struct {
	Key   types.VibeKey `json:"key" yaml:"key"`
	Label string        `json:"label" yaml:"label"`
	Image string        `json:"image,omitempty" yaml:"image"`
	Items []Location    `json:"items" yaml:"items"`
}

// Catalog is the read-only set of vibes in declaration order
type Catalog struct {
	Vibes []Vibe `json:"vibes" yaml:"vibes"`
}

// Vibe returns the vibe with the given key
func (c *Catalog) Vibe(key types.VibeKey) (*Vibe, bool) {
	for i := range c.Vibes {
		if c.Vibes[i].Key == key {
			return &c.Vibes[i], true
		}
	}
	return nil, false
}

// Location looks a location up by ID across all vibes
func (c *Catalog) Location(id string) (Location, bool) {
	for _, v := range c.Vibes {
		for _, loc := range v.Items {
			if loc.ID == id {
				return loc, true
			}
		}
	}
	return Location{}, false
}
