package store

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	apperrors "github.com/vibe-guide/internal/errors"
	"github.com/vibe-guide/internal/logging"
	"github.com/vibe-guide/internal/models"
	"github.com/vibe-guide/internal/storage"
	"github.com/vibe-guide/internal/types"
)

// SettingsStore is the single source of truth for display preferences
type SettingsStore struct {
	loader    Loader
	persister Persister
	logger    *logging.Logger

	mu       sync.RWMutex
	settings models.Settings

	listeners Broadcaster[models.Settings]
}

// NewSettingsStore creates a store holding the defaults
func NewSettingsStore(loader Loader, persister Persister, logger *logging.Logger) *SettingsStore {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &SettingsStore{
		loader:    loader,
		persister: persister,
		logger:    logger.WithField("store", SettingsKey),
		settings:  models.DefaultSettings(),
	}
}

// Initialize restores persisted settings. Each field falls back to its
// default on its own, so one corrupt field does not reset the others.
func (s *SettingsStore) Initialize(ctx context.Context) {
	restored := s.hydrate(ctx)

	s.mu.Lock()
	s.settings = restored
	s.mu.Unlock()

	s.logger.WithFields(map[string]interface{}{
		"categoriesOn": restored.CategoriesOn,
		"showLimit":    restored.ShowLimit.String(),
	}).Debug("Settings restored")
	s.listeners.Notify(restored)
}

func (s *SettingsStore) hydrate(ctx context.Context) models.Settings {
	settings := models.DefaultSettings()
	if s.loader == nil {
		return settings
	}

	raw, err := s.loader.Load(ctx, SettingsKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.WithError(apperrors.NewHydrationError(SettingsKey, err)).Warn("Could not read settings")
		}
		return settings
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		s.logger.WithError(apperrors.NewHydrationError(SettingsKey, err)).Warn("Discarding corrupt settings")
		return settings
	}

	if data, ok := fields["categoriesOn"]; ok {
		var on bool
		if err := json.Unmarshal(data, &on); err != nil {
			s.logger.WithField("field", "categoriesOn").WithError(err).Warn("Ignoring corrupt setting")
		} else {
			settings.CategoriesOn = on
		}
	}
	if data, ok := fields["showLimit"]; ok {
		var limit types.ShowLimit
		if err := json.Unmarshal(data, &limit); err != nil {
			s.logger.WithField("field", "showLimit").WithError(err).Warn("Ignoring corrupt setting")
		} else {
			settings.ShowLimit = limit
		}
	}
	return settings
}

// Get returns the current settings by value
func (s *SettingsStore) Get() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// SetCategoriesOn switches grouping by vibe on or off
func (s *SettingsStore) SetCategoriesOn(on bool) {
	s.update(func(settings *models.Settings) {
		settings.CategoriesOn = on
	})
}

// SetShowLimit changes the cap on the flattened list. A negative count is
// rejected with a validation error and leaves the settings untouched.
func (s *SettingsStore) SetShowLimit(limit types.ShowLimit) error {
	if err := limit.Validate(); err != nil {
		return apperrors.NewValidationError("showLimit", err.Error())
	}
	s.update(func(settings *models.Settings) {
		settings.ShowLimit = limit
	})
	return nil
}

func (s *SettingsStore) update(apply func(*models.Settings)) {
	s.mu.Lock()
	apply(&s.settings)
	snapshot := s.settings
	s.persist(snapshot)
	s.mu.Unlock()

	s.listeners.Notify(snapshot)
}

func (s *SettingsStore) persist(settings models.Settings) {
	if s.persister == nil {
		return
	}
	data, err := json.Marshal(settings)
	if err != nil {
		s.logger.WithError(apperrors.NewPersistenceError(SettingsKey, err)).Error("Could not encode settings")
		return
	}
	s.persister.Persist(SettingsKey, string(data))
}

// Subscribe registers fn to receive the settings after every change.
// The returned func removes the subscription.
func (s *SettingsStore) Subscribe(fn func(models.Settings)) (unsubscribe func()) {
	token := s.listeners.Subscribe(fn)
	return func() { s.listeners.Unsubscribe(token) }
}
