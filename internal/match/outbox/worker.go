package outbox

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"
	"time"
)

// Config tunes the polling worker.
type Config struct {
	PollInterval time.Duration
	BatchSize    int32
	MaxRetries   int
	RetryDelay   time.Duration
}

// DefaultConfig returns the worker defaults.
func DefaultConfig() Config {
	return Config{
		PollInterval: 5 * time.Second,
		BatchSize:    100,
		MaxRetries:   3,
		RetryDelay:   time.Second,
	}
}

// Worker is the plain polling relay: no notification channel, just a sweep of
// unsent rows on a fixed interval. Suited to deployments where a dedicated
// LISTEN connection is unwanted; latency is bounded by the poll interval.
type Worker struct {
	db     *sql.DB
	pub    Publisher
	cfg    Config
	logger *slog.Logger

	stop chan struct{}
	wg   sync.WaitGroup
}

// NewWorker creates a polling relay worker.
func NewWorker(database *sql.DB, pub Publisher, cfg Config, logger *slog.Logger) *Worker {
	return &Worker{
		db:     database,
		pub:    pub,
		cfg:    cfg,
		logger: logger,
		stop:   make(chan struct{}),
	}
}

// Start launches the poll loop.
func (w *Worker) Start(ctx context.Context) error {
	w.logger.Info("outbox worker started",
		slog.Duration("poll_interval", w.cfg.PollInterval),
		slog.Int("batch_size", int(w.cfg.BatchSize)))

	w.wg.Add(1)
	go w.run(ctx)
	return nil
}

// Stop halts the loop and waits for an in-flight sweep to finish.
func (w *Worker) Stop() {
	close(w.stop)
	w.wg.Wait()
	w.logger.Info("outbox worker stopped")
}

func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		case <-ticker.C:
			n, err := sweepUnsent(ctx, w.db, w.pub, w.cfg.BatchSize, w.cfg.MaxRetries, w.cfg.RetryDelay)
			if err != nil {
				w.logger.Error("outbox sweep failed", slog.Any("error", err))
				continue
			}
			if n > 0 {
				w.logger.Info("relayed outbox rows", slog.Int("rows", n))
			}
		}
	}
}
