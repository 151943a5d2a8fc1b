// Package catalog loads the read-only catalog of vibes and places and holds
// the pure helpers screens use to derive their views from it.
package catalog

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vibe-guide/internal/models"
	"github.com/vibe-guide/internal/types"
)

//go:embed catalog.yaml
var builtin []byte

// Provider gives read-only access to a catalog
type Provider interface {
	Catalog() *models.Catalog
}

type staticProvider struct {
	catalog *models.Catalog
}

func (p staticProvider) Catalog() *models.Catalog {
	return p.catalog
}

// NewProvider wraps an already loaded catalog
func NewProvider(c *models.Catalog) Provider {
	return staticProvider{catalog: c}
}

// Default parses the built-in catalog
func Default() (*models.Catalog, error) {
	return Parse(builtin)
}

// LoadFile parses a catalog from a YAML file
func LoadFile(path string) (*models.Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses a catalog from r
func Load(r io.Reader) (*models.Catalog, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, assigns IDs and validates the result
func Parse(data []byte) (*models.Catalog, error) {
	var c models.Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	seen := make(map[types.VibeKey]bool, len(c.Vibes))
	for vi := range c.Vibes {
		v := &c.Vibes[vi]
		if v.Key == "" {
			return nil, fmt.Errorf("catalog vibe #%d has no key", vi)
		}
		if seen[v.Key] {
			return nil, fmt.Errorf("catalog vibe %q declared twice", v.Key)
		}
		seen[v.Key] = true

		for i := range v.Items {
			v.Items[i].ID = LocationID(v.Key, i)
			v.Items[i].Vibe = v.Key
		}
	}
	return &c, nil
}

// LocationID is the stable ID of the index-th item of a vibe
func LocationID(vibe types.VibeKey, index int) string {
	return fmt.Sprintf("%s-%d", vibe, index)
}
