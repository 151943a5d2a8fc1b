package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vibe-guide/internal/catalog"
	"github.com/vibe-guide/internal/logging"
	"github.com/vibe-guide/internal/store"
)

const testCatalog = `
vibes:
  - key: party
    label: Party & Chill
    items:
      - {title: A, lat: 55.1, lng: 9.1}
      - {title: B, lat: 55.2, lng: 9.2}
  - key: outdoor
    label: Outdoor Adventure
    items:
      - {title: Viewpoint, lat: 55.7, lng: 9.6}
`

type fixture struct {
	provider catalog.Provider
	saved    *store.SavedStore
	settings *store.SettingsStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	c, err := catalog.Parse([]byte(testCatalog))
	require.NoError(t, err)

	logger := logging.NewNopLogger()
	return &fixture{
		provider: catalog.NewProvider(c),
		saved:    store.NewSavedStore(nil, nil, logger),
		settings: store.NewSettingsStore(nil, nil, logger),
	}
}

func spotIDs(spots []Spot) []string {
	out := make([]string, len(spots))
	for i, s := range spots {
		out[i] = s.ID
	}
	return out
}
