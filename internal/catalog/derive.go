package catalog

import (
	"github.com/vibe-guide/internal/models"
	"github.com/vibe-guide/internal/types"
)

// FlattenCatalog lists every location: vibes in declaration order, then items in order
func FlattenCatalog(c *models.Catalog) []models.Location {
	if c == nil {
		return nil
	}
	n := 0
	for _, v := range c.Vibes {
		n += len(v.Items)
	}

	out := make([]models.Location, 0, n)
	for _, v := range c.Vibes {
		out = append(out, v.Items...)
	}
	return out
}

// ApplyShowLimit returns items unchanged for All, otherwise the first
// min(n, len(items)) items. Non-positive counts give an empty slice.
func ApplyShowLimit[T any](items []T, limit types.ShowLimit) []T {
	switch limit.Kind() {
	case types.LimitAll:
		return items
	case types.LimitCount:
		n := limit.Count()
		if n <= 0 {
			return []T{}
		}
		if n > len(items) {
			n = len(items)
		}
		// full slice expression so appends by the caller cannot clobber the source
		return items[:n:n]
	default:
		return items
	}
}
