// Package store holds the two process-wide reactive state containers: the
// saved locations and the display settings. Both are constructed once at the
// composition root and shared by reference with every consumer.
package store

import (
	"context"
)

// Storage keys, relative to the backend's key prefix
const (
	SavedKey    = "saved_locations"
	SettingsKey = "app_settings"
)

// Loader reads a persisted value during hydration
type Loader interface {
	Load(ctx context.Context, key string) (string, error)
}

// Persister accepts a write and returns immediately. The stores never learn
// whether the write landed.
type Persister interface {
	Persist(key, value string)
}

// PersisterFunc adapts a function to Persister
type PersisterFunc func(key, value string)

// Persist calls f
func (f PersisterFunc) Persist(key, value string) {
	f(key, value)
}
