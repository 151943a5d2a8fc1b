package store

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"

	apperrors "github.com/vibe-guide/internal/errors"
	"github.com/vibe-guide/internal/logging"
	"github.com/vibe-guide/internal/models"
	"github.com/vibe-guide/internal/storage"
)

// SavedStore is the single source of truth for bookmarked locations
type SavedStore struct {
	loader    Loader
	persister Persister
	logger    *logging.Logger
	now       func() time.Time

	mu    sync.RWMutex
	saved models.SavedSet

	listeners Broadcaster[models.SavedSet]
}

// NewSavedStore creates an empty store. Call Initialize to restore persisted state.
func NewSavedStore(loader Loader, persister Persister, logger *logging.Logger) *SavedStore {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &SavedStore{
		loader:    loader,
		persister: persister,
		logger:    logger.WithField("store", SavedKey),
		now:       time.Now,
		saved:     models.SavedSet{},
	}
}

// Initialize restores the saved set. It never fails: a missing, unreadable
// or corrupt record leaves the store empty.
func (s *SavedStore) Initialize(ctx context.Context) {
	restored := s.hydrate(ctx)

	s.mu.Lock()
	s.saved = restored
	snapshot := s.saved.Clone()
	s.mu.Unlock()

	s.logger.WithField("count", len(snapshot)).Debug("Saved locations restored")
	s.listeners.Notify(snapshot)
}

func (s *SavedStore) hydrate(ctx context.Context) models.SavedSet {
	if s.loader == nil {
		return models.SavedSet{}
	}

	raw, err := s.loader.Load(ctx, SavedKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.WithError(apperrors.NewHydrationError(SavedKey, err)).Warn("Could not read saved locations")
		}
		return models.SavedSet{}
	}

	set, err := decodeSaved(raw)
	if err != nil {
		s.logger.WithError(apperrors.NewHydrationError(SavedKey, err)).Warn("Discarding corrupt saved locations")
		return models.SavedSet{}
	}
	return set
}

// decodeSaved reads the id -> record mapping. A bare true is accepted as a
// presence-only entry; entries that fit neither shape are skipped.
func decodeSaved(raw string) (models.SavedSet, error) {
	var entries map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, err
	}

	set := make(models.SavedSet, len(entries))
	for id, data := range entries {
		if id == "" {
			continue
		}
		var present bool
		if err := json.Unmarshal(data, &present); err == nil {
			if present {
				set[id] = models.SavedLocation{ID: id}
			}
			continue
		}
		var rec models.SavedLocation
		if err := json.Unmarshal(data, &rec); err != nil {
			continue
		}
		rec.ID = id
		set[id] = rec
	}
	return set, nil
}

// IsSaved reports whether id is bookmarked
func (s *SavedStore) IsSaved(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saved.Has(id)
}

// Toggle inverts the membership of loc and returns the new state. Subscribers
// see the updated set before Toggle returns; the write to storage happens in
// the background.
func (s *SavedStore) Toggle(loc models.Location) bool {
	s.mu.Lock()
	nowSaved := !s.saved.Has(loc.ID)
	if nowSaved {
		s.saved[loc.ID] = models.NewSavedLocation(loc, s.now())
	} else {
		delete(s.saved, loc.ID)
	}
	snapshot := s.saved.Clone()
	// enqueued under the lock so the persister sees writes in mutation order
	s.persist(snapshot)
	s.mu.Unlock()

	s.logger.WithFields(map[string]interface{}{
		"id":    loc.ID,
		"saved": nowSaved,
	}).Debug("Saved location toggled")

	s.listeners.Notify(snapshot)
	return nowSaved
}

func (s *SavedStore) persist(set models.SavedSet) {
	if s.persister == nil {
		return
	}
	data, err := json.Marshal(set)
	if err != nil {
		s.logger.WithError(apperrors.NewPersistenceError(SavedKey, err)).Error("Could not encode saved locations")
		return
	}
	s.persister.Persist(SavedKey, string(data))
}

// Snapshot returns a copy of the saved set
func (s *SavedStore) Snapshot() models.SavedSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saved.Clone()
}

// List returns the saved records, most recently saved first
func (s *SavedStore) List() []models.SavedLocation {
	s.mu.RLock()
	out := make([]models.SavedLocation, 0, len(s.saved))
	for _, rec := range s.saved {
		out = append(out, rec)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].SavedAt.After(out[j].SavedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Subscribe registers fn to receive a copy of the set after every change.
// The returned func removes the subscription.
func (s *SavedStore) Subscribe(fn func(models.SavedSet)) (unsubscribe func()) {
	token := s.listeners.Subscribe(func(set models.SavedSet) {
		fn(set.Clone())
	})
	return func() { s.listeners.Unsubscribe(token) }
}
