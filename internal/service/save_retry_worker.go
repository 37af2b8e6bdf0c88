package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// SaveRetryWorker is a background worker that periodically retries saving a
// ledger whose last save failed
type SaveRetryWorker struct {
	projectionService *ProjectionService
	logger            zerolog.Logger
	interval          time.Duration
	stopCh            chan struct{}
	doneCh            chan struct{}
	mu                sync.Mutex
	running           bool
}

// SaveRetryWorkerConfig holds configuration for the save retry worker
type SaveRetryWorkerConfig struct {
	Interval time.Duration // How often to retry an unsaved ledger
}

// DefaultSaveRetryWorkerConfig returns sensible defaults
func DefaultSaveRetryWorkerConfig() SaveRetryWorkerConfig {
	return SaveRetryWorkerConfig{
		Interval: 30 * time.Second,
	}
}

// NewSaveRetryWorker creates a new save retry worker
func NewSaveRetryWorker(
	projectionService *ProjectionService,
	logger zerolog.Logger,
	config SaveRetryWorkerConfig,
) *SaveRetryWorker {
	if config.Interval <= 0 {
		config.Interval = DefaultSaveRetryWorkerConfig().Interval
	}

	return &SaveRetryWorker{
		projectionService: projectionService,
		logger:            logger.With().Str("component", "save_retry_worker").Logger(),
		interval:          config.Interval,
	}
}

// Start begins the background retries. A stopped worker can be started again.
func (w *SaveRetryWorker) Start(ctx context.Context) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	stopCh, doneCh := w.stopCh, w.doneCh
	w.mu.Unlock()

	w.logger.Info().
		Dur("interval", w.interval).
		Msg("Starting save retry worker")

	go w.run(ctx, stopCh, doneCh)
}

// Stop gracefully stops the worker
func (w *SaveRetryWorker) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	stopCh, doneCh := w.stopCh, w.doneCh
	w.mu.Unlock()

	w.logger.Info().Msg("Stopping save retry worker")
	close(stopCh)
	<-doneCh
	w.logger.Info().Msg("Save retry worker stopped")
}

// run is the main loop for one Start/Stop cycle
func (w *SaveRetryWorker) run(ctx context.Context, stopCh <-chan struct{}, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.mu.Lock()
			// A Stop/Start may already have replaced this cycle
			if w.doneCh == doneCh {
				w.running = false
			}
			w.mu.Unlock()
			return
		case <-stopCh:
			return
		case <-ticker.C:
			w.RetryNow(ctx)
		}
	}
}

// RetryNow flushes an unsaved ledger once and reports whether it is now
// persisted
func (w *SaveRetryWorker) RetryNow(ctx context.Context) bool {
	attempted, err := w.projectionService.Flush(ctx)
	if !attempted {
		return true
	}
	if err != nil {
		w.logger.Debug().Err(err).Msg("Ledger still unsaved")
		return false
	}
	w.logger.Info().Msg("Unsaved ledger written after retry")
	return true
}

// IsRunning returns whether the worker is currently running
func (w *SaveRetryWorker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}
