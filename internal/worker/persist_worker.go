// Package worker runs the background goroutine that writes store state to
// the key-value backend.
package worker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/vibe-guide/internal/circuitbreaker"
	apperrors "github.com/vibe-guide/internal/errors"
	"github.com/vibe-guide/internal/logging"
	"github.com/vibe-guide/internal/storage"
)

// Saver is the write half of storage.KeyValueStore
type Saver interface {
	Save(ctx context.Context, key, value string) error
}

var _ Saver = storage.KeyValueStore(nil)

// PersistWorker accepts writes without blocking and applies them in the
// background. Writes to the same key that pile up before the worker gets to
// them are coalesced, so only the latest value is written. A failed write is
// logged and dropped; the next mutation of that key will write again.
type PersistWorker struct {
	store        Saver
	limiter      *rate.Limiter
	breaker      *circuitbreaker.CircuitBreaker
	writeTimeout time.Duration
	logger       *logging.Logger

	mu      sync.Mutex
	pending map[string]string
	running bool
	stopped bool
	wake    chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}

	enqueued  atomic.Int64
	coalesced atomic.Int64
	written   atomic.Int64
	failed    atomic.Int64
	rejected  atomic.Int64
}

// PersistWorkerConfig holds configuration for a persist worker
type PersistWorkerConfig struct {
	Store        Saver
	MinInterval  time.Duration // minimum spacing between writes, 0 disables throttling
	WriteTimeout time.Duration
	Breaker      *circuitbreaker.Config
	Logger       *logging.Logger
}

// PersistStats is a point-in-time view of the worker counters
type PersistStats struct {
	Running   bool                 `json:"running"`
	Pending   int                  `json:"pending"`
	Enqueued  int64                `json:"enqueued"`
	Coalesced int64                `json:"coalesced"`
	Written   int64                `json:"written"`
	Failed    int64                `json:"failed"`
	Rejected  int64                `json:"rejected"`
	Breaker   circuitbreaker.Stats `json:"breaker"`
}

// NewPersistWorker creates a stopped worker
func NewPersistWorker(cfg *PersistWorkerConfig) (*PersistWorker, error) {
	if cfg == nil || cfg.Store == nil {
		return nil, fmt.Errorf("persist worker needs a store")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	logger = logger.WithField("component", "persist_worker")

	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}

	writeTimeout := cfg.WriteTimeout
	if writeTimeout <= 0 {
		writeTimeout = 3 * time.Second
	}

	breakerCfg := cfg.Breaker
	if breakerCfg == nil {
		breakerCfg = circuitbreaker.DefaultConfig("persist")
	}

	return &PersistWorker{
		store:        cfg.Store,
		limiter:      rate.NewLimiter(limit, 1),
		breaker:      circuitbreaker.NewCircuitBreaker(breakerCfg, logger),
		writeTimeout: writeTimeout,
		logger:       logger,
		pending:      make(map[string]string),
		wake:         make(chan struct{}, 1),
		stopCh:       make(chan struct{}),
		doneCh:       make(chan struct{}),
	}, nil
}

// Persist queues value for key and returns immediately
func (w *PersistWorker) Persist(key, value string) {
	w.mu.Lock()
	if _, ok := w.pending[key]; ok {
		w.coalesced.Add(1)
	}
	w.pending[key] = value
	w.mu.Unlock()
	w.enqueued.Add(1)

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Start launches the write loop
func (w *PersistWorker) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return fmt.Errorf("persist worker is already running")
	}
	if w.stopped {
		return fmt.Errorf("persist worker cannot be restarted")
	}
	w.running = true

	w.logger.Debug("Starting persist worker")
	go w.loop(ctx)
	return nil
}

// Stop ends the write loop after flushing everything still pending.
// ctx bounds how long Stop waits for that flush.
func (w *PersistWorker) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return fmt.Errorf("persist worker is not running")
	}
	w.running = false
	w.stopped = true
	w.mu.Unlock()

	close(w.stopCh)

	select {
	case <-w.doneCh:
		w.logger.WithField("written", w.written.Load()).Debug("Persist worker stopped")
		return nil
	case <-ctx.Done():
		w.logger.Warn("Persist worker stop timed out, pending writes may be lost")
		return ctx.Err()
	}
}

func (w *PersistWorker) loop(ctx context.Context) {
	defer close(w.doneCh)

	// a throttled flush must give up as soon as Stop is called
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-w.stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		select {
		case <-w.wake:
			w.flush(ctx, true)
		case <-w.stopCh:
			w.drain()
			return
		case <-ctx.Done():
			w.drain()
			return
		}
	}
}

// drain writes whatever is left without throttling. It runs detached from
// the worker context, which may already be cancelled.
func (w *PersistWorker) drain() {
	w.flush(context.Background(), false)
}

func (w *PersistWorker) takePending() map[string]string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil
	}
	batch := w.pending
	w.pending = make(map[string]string)
	return batch
}

// requeue puts back writes that were not attempted, unless a newer value
// arrived in the meantime
func (w *PersistWorker) requeue(batch map[string]string, keys []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, key := range keys {
		if _, newer := w.pending[key]; !newer {
			w.pending[key] = batch[key]
		}
	}
}

func (w *PersistWorker) flush(ctx context.Context, throttle bool) {
	batch := w.takePending()
	if len(batch) == 0 {
		return
	}

	keys := make([]string, 0, len(batch))
	for key := range batch {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for i, key := range keys {
		if throttle {
			if err := w.limiter.Wait(ctx); err != nil {
				// shutting down; drain picks these up
				w.requeue(batch, keys[i:])
				return
			}
		}
		w.write(ctx, key, batch[key])
	}
}

func (w *PersistWorker) write(ctx context.Context, key, value string) {
	writeCtx, cancel := context.WithTimeout(ctx, w.writeTimeout)
	defer cancel()

	err := w.breaker.Execute(writeCtx, func(ctx context.Context) error {
		return w.store.Save(ctx, key, value)
	})
	if err == nil {
		w.written.Add(1)
		return
	}

	logger := w.logger.WithError(apperrors.NewPersistenceError(key, err))
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		w.rejected.Add(1)
		logger.Warn("Storage unavailable, write skipped")
		return
	}
	w.failed.Add(1)
	logger.Error("Background write failed")
}

// GetStats returns the worker counters
func (w *PersistWorker) GetStats() PersistStats {
	w.mu.Lock()
	running, pending := w.running, len(w.pending)
	w.mu.Unlock()

	return PersistStats{
		Running:   running,
		Pending:   pending,
		Enqueued:  w.enqueued.Load(),
		Coalesced: w.coalesced.Load(),
		Written:   w.written.Load(),
		Failed:    w.failed.Load(),
		Rejected:  w.rejected.Load(),
		Breaker:   w.breaker.GetStats(),
	}
}
