package storage

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibe-guide/internal/config"
	apperrors "github.com/vibe-guide/internal/errors"
	"github.com/vibe-guide/internal/logging"
)

func redisStorageConfig(mr *miniredis.Miniredis) *config.StorageConfig {
	return &config.StorageConfig{
		Backend:         config.BackendRedis,
		KeyPrefix:       "test:",
		ConnectAttempts: 1,
		Redis: config.RedisConfig{
			Host:           mr.Host(),
			Port:           mr.Port(),
			MaxConnections: 2,
		},
	}
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := testContext(t)

	kv, backend, err := Open(ctx, redisStorageConfig(mr), logging.NewNopLogger())
	require.NoError(t, err)
	defer kv.Close()

	assert.Equal(t, config.BackendRedis, backend)
	require.NoError(t, kv.Save(ctx, "app_settings", "{}"))
	assert.True(t, mr.Exists("test:app_settings"))
}

func TestOpen_Memory(t *testing.T) {
	kv, backend, err := Open(testContext(t), &config.StorageConfig{Backend: config.BackendMemory}, logging.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, backend)
	runKVContract(t, kv)
}

func TestOpen_UnreachableFallsBackToMemory(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := redisStorageConfig(mr)
	mr.Close()
	cfg.FallbackToMemory = true

	kv, backend, err := Open(testContext(t), cfg, logging.NewNopLogger())
	require.NoError(t, err)
	assert.Equal(t, config.BackendMemory, backend)
	assert.IsType(t, &MemoryKV{}, kv)
}

func TestOpen_UnreachableWithoutFallback(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := redisStorageConfig(mr)
	mr.Close()

	_, _, err := Open(testContext(t), cfg, logging.NewNopLogger())
	require.Error(t, err)
	assert.True(t, apperrors.IsCategory(err, apperrors.CategoryStorage))
}
