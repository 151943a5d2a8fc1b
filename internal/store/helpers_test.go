package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vibe-guide/internal/logging"
	"github.com/vibe-guide/internal/storage"
)

// recordingPersister keeps every write in the order it was handed over
type recordingPersister struct {
	mu     sync.Mutex
	writes []write
}

type write struct {
	key, value string
}

func (p *recordingPersister) Persist(key, value string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.writes = append(p.writes, write{key: key, value: value})
}

func (p *recordingPersister) all() []write {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]write(nil), p.writes...)
}

func (p *recordingPersister) last(t *testing.T) write {
	t.Helper()
	all := p.all()
	if len(all) == 0 {
		t.Fatal("nothing persisted")
	}
	return all[len(all)-1]
}

type failingLoader struct{}

func (failingLoader) Load(context.Context, string) (string, error) {
	return "", errors.New("disk on fire")
}

func seeded(t *testing.T, key, value string) *storage.MemoryKV {
	t.Helper()
	kv := storage.NewMemoryKV()
	if err := kv.Save(context.Background(), key, value); err != nil {
		t.Fatal(err)
	}
	return kv
}

func fixedClock(start time.Time) func() time.Time {
	var mu sync.Mutex
	now := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(time.Second)
		return now
	}
}

func quietLogger() *logging.Logger {
	return logging.NewNopLogger()
}
