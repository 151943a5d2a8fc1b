package storage

import (
	"context"
	"fmt"

	"github.com/vibe-guide/internal/config"
	apperrors "github.com/vibe-guide/internal/errors"
	"github.com/vibe-guide/internal/logging"
	"github.com/vibe-guide/internal/retry"
)

// Open connects to the configured backend and namespaces it with the key prefix.
// It returns the backend name actually in use: when the backend cannot be
// reached and FallbackToMemory is set, the app runs on MemoryKV instead of failing.
func Open(ctx context.Context, cfg *config.StorageConfig, logger *logging.Logger) (KeyValueStore, string, error) {
	kv, err := openBackend(ctx, cfg, logger)
	if err != nil {
		if !cfg.FallbackToMemory {
			return nil, "", apperrors.NewStorageError("open "+cfg.Backend, err)
		}
		logger.WithField("backend", cfg.Backend).WithError(err).
			Warn("Storage backend unavailable, saved data will not outlive this process")
		return NewMemoryKV(), config.BackendMemory, nil
	}
	return WithPrefix(kv, cfg.KeyPrefix), cfg.Backend, nil
}

func openBackend(ctx context.Context, cfg *config.StorageConfig, logger *logging.Logger) (KeyValueStore, error) {
	ctx = logging.WithLogger(ctx, logger)
	backoff := retry.DefaultConfig(cfg.ConnectAttempts)

	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemoryKV(), nil

	case config.BackendSQLite:
		return NewSQLiteKV(&cfg.SQLite, logger)

	case config.BackendRedis:
		var kv *RedisKV
		err := retry.Do(ctx, backoff, func(ctx context.Context, attempt int) error {
			var err error
			kv, err = NewRedisKV(ctx, &cfg.Redis)
			return err
		})
		if err != nil {
			return nil, err
		}
		return kv, nil

	case config.BackendPostgres:
		var kv *PostgresKV
		err := retry.Do(ctx, backoff, func(ctx context.Context, attempt int) error {
			var err error
			kv, err = NewPostgresKV(ctx, &cfg.Postgres)
			return err
		})
		if err != nil {
			return nil, err
		}
		if err := RunMigrations(cfg.Postgres.URL()); err != nil {
			_ = kv.Close()
			return nil, err
		}
		return kv, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
