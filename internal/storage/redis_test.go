package storage

import (
	"context"
	"testing"
	"time"

	"github.com/vibe-guide/internal/config"
)

func TestNewRedisKV(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg := &config.RedisConfig{
		Host:           "localhost",
		Port:           "6379",
		Password:       "",
		DB:             0,
		MaxConnections: 10,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	kv, err := NewRedisKV(ctx, cfg)
	if err != nil {
		t.Skipf("Skipping test - Redis not available: %v", err)
		return
	}
	defer func() {
		if err := kv.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}()

	key := "vibe-guide-test:" + time.Now().Format(time.RFC3339Nano)
	if err := kv.Save(ctx, key, `{"categoriesOn":false}`); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := kv.Load(ctx, key)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != `{"categoriesOn":false}` {
		t.Errorf("Load() = %q", got)
	}
	_ = kv.client.Del(ctx, key).Err()
}

func TestNewRedisKV_Unreachable(t *testing.T) {
	cfg := &config.RedisConfig{Host: "127.0.0.1", Port: "1", MaxConnections: 1}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if _, err := NewRedisKV(ctx, cfg); err == nil {
		t.Fatal("expected an error connecting to a closed port")
	}
}
