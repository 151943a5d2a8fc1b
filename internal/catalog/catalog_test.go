package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-guide/internal/types"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	keys := make([]types.VibeKey, 0, len(c.Vibes))
	for _, v := range c.Vibes {
		keys = append(keys, v.Key)
		assert.NotEmpty(t, v.Label)
		assert.NotEmpty(t, v.Items, "vibe %s has no items", v.Key)
	}
	assert.Equal(t, []types.VibeKey{types.VibeParty, types.VibeOutdoor, types.VibePlay, types.VibeRelax}, keys)

	party, ok := c.Vibe(types.VibeParty)
	require.True(t, ok)
	assert.Equal(t, "Party & Chill", party.Label)
	assert.Equal(t, "party-0", party.Items[0].ID)
	assert.Equal(t, types.VibeParty, party.Items[0].Vibe)

	ids := map[string]bool{}
	for _, loc := range FlattenCatalog(c) {
		assert.False(t, ids[loc.ID], "duplicate id %s", loc.ID)
		ids[loc.ID] = true
	}
}

func TestParse_AssignsIDs(t *testing.T) {
	c, err := Parse([]byte(`
vibes:
  - key: party
    label: Party
    items:
      - {title: A, lat: 1, lng: 2}
      - {title: B, lat: 3, lng: 4}
  - key: outdoor
    label: Outdoor
    items:
      - {title: C, lat: 5, lng: 6}
`))
	require.NoError(t, err)

	loc, ok := c.Location("outdoor-0")
	require.True(t, ok)
	assert.Equal(t, "C", loc.Title)
	assert.Equal(t, types.VibeOutdoor, loc.Vibe)

	_, ok = c.Location("outdoor-1")
	assert.False(t, ok)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "vibes: [unclosed"},
		{"missing key", "vibes:\n  - label: X\n"},
		{"duplicate key", "vibes:\n  - key: a\n  - key: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoad_FromReader(t *testing.T) {
	c, err := Load(strings.NewReader("vibes:\n  - key: relax\n    label: Relax\n"))
	require.NoError(t, err)
	assert.Len(t, c.Vibes, 1)
	assert.Equal(t, c, NewProvider(c).Catalog())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("/nonexistent/catalog.yaml")
	assert.Error(t, err)
}
