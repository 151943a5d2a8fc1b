package main

import (
	"context"
	"fmt"
	"time"

	"github.com/vibe-guide/internal/catalog"
	"github.com/vibe-guide/internal/circuitbreaker"
	"github.com/vibe-guide/internal/config"
	"github.com/vibe-guide/internal/logging"
	"github.com/vibe-guide/internal/service"
	"github.com/vibe-guide/internal/storage"
	"github.com/vibe-guide/internal/store"
	"github.com/vibe-guide/internal/worker"
)

// app is the composition root: it owns the two stores and everything
// that reads from or writes to them.
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	backend string

	kv     storage.KeyValueStore
	writer *worker.PersistWorker

	saved    *store.SavedStore
	settings *store.SettingsStore

	recommendations *service.RecommendationService
	maps            *service.MapService
	savedList       *service.SavedService
}

func loadCatalog(cfg *config.CatalogConfig) (catalog.Provider, error) {
	if cfg.Path == "" {
		c, err := catalog.Default()
		if err != nil {
			return nil, err
		}
		return catalog.NewProvider(c), nil
	}
	c, err := catalog.LoadFile(cfg.Path)
	if err != nil {
		return nil, err
	}
	return catalog.NewProvider(c), nil
}

func newApp(ctx context.Context, cfg *config.Config, logger *logging.Logger) (*app, error) {
	provider, err := loadCatalog(&cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	kv, backend, err := storage.Open(ctx, &cfg.Storage, logger)
	if err != nil {
		return nil, err
	}

	writer, err := worker.NewPersistWorker(&worker.PersistWorkerConfig{
		Store:        kv,
		MinInterval:  cfg.Persist.MinInterval,
		WriteTimeout: cfg.Persist.WriteTimeout,
		Breaker: &circuitbreaker.Config{
			Name:        "storage-" + backend,
			MaxFailures: cfg.Persist.BreakerMaxFailures,
			Cooldown:    cfg.Persist.BreakerCooldown,
		},
		Logger: logger,
	})
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	if err := writer.Start(ctx); err != nil {
		_ = kv.Close()
		return nil, err
	}

	saved := store.NewSavedStore(kv, writer, logger)
	settings := store.NewSettingsStore(kv, writer, logger)
	saved.Initialize(ctx)
	settings.Initialize(ctx)

	logger.WithFields(map[string]interface{}{
		"backend": backend,
		"saved":   len(saved.Snapshot()),
	}).Debug("Guide ready")

	return &app{
		cfg:             cfg,
		logger:          logger,
		backend:         backend,
		kv:              kv,
		writer:          writer,
		saved:           saved,
		settings:        settings,
		recommendations: service.NewRecommendationService(provider, settings, saved),
		maps:            service.NewMapService(provider, saved),
		savedList:       service.NewSavedService(provider, saved),
	}, nil
}

// Close flushes pending writes and releases the backend
func (a *app) Close() error {
	timeout := a.cfg.Persist.WriteTimeout * 2
	if timeout < time.Second {
		timeout = time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.writer.Stop(ctx); err != nil {
		a.logger.WithError(err).Warn("Failed to flush pending writes")
	}
	if stats := a.writer.GetStats(); stats.Failed+stats.Rejected > 0 {
		a.logger.WithFields(map[string]interface{}{
			"failed":   stats.Failed,
			"rejected": stats.Rejected,
		}).Warn("Some changes were not saved to storage")
	}
	return a.kv.Close()
}
