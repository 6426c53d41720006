package outbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	matchdb "github.com/pitchside/pitchside/internal/match/db"
)

// ListenerConfig tunes the LISTEN/NOTIFY relay.
type ListenerConfig struct {
	DatabaseURL      string
	NotifyChannel    string
	FallbackInterval time.Duration
	PingInterval     time.Duration
	MaxRetries       int
	RetryDelay       time.Duration
	BatchSize        int32
}

// DefaultListenerConfig returns the relay defaults.
func DefaultListenerConfig() ListenerConfig {
	return ListenerConfig{
		NotifyChannel:    "match_outbox_events",
		FallbackInterval: 30 * time.Second,
		PingInterval:     90 * time.Second,
		MaxRetries:       5,
		RetryDelay:       200 * time.Millisecond,
		BatchSize:        100,
	}
}

// Listener relays committed outbox rows to the bus the moment Postgres
// notifies on the outbox channel, with a periodic fallback sweep for
// notifications lost across reconnects. Low latency comes from NOTIFY; the
// sweep is what makes delivery eventually certain.
type Listener struct {
	db      *sql.DB
	queries *matchdb.Queries
	pub     Publisher
	pql     *pq.Listener
	cfg     ListenerConfig
}

// NewListener creates a listener and opens its notification channel.
func NewListener(database *sql.DB, pub Publisher, cfg ListenerConfig) (*Listener, error) {
	if cfg.DatabaseURL == "" {
		return nil, errors.New("listener requires a database URL")
	}

	pql := pq.NewListener(cfg.DatabaseURL, 10*time.Second, time.Minute, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Error().Err(err).Int("event", int(ev)).Msg("outbox listener connection event")
		}
	})
	if err := pql.Listen(cfg.NotifyChannel); err != nil {
		pql.Close()
		return nil, fmt.Errorf("listen on %s: %w", cfg.NotifyChannel, err)
	}

	return &Listener{
		db:      database,
		queries: matchdb.New(database),
		pub:     pub,
		pql:     pql,
		cfg:     cfg,
	}, nil
}

// Start runs the relay loop until the context ends.
func (l *Listener) Start(ctx context.Context) error {
	log.Info().
		Str("channel", l.cfg.NotifyChannel).
		Dur("fallback", l.cfg.FallbackInterval).
		Msg("outbox listener started")

	// Catch up on anything committed before we began listening.
	l.sweep(ctx)

	fallback := time.NewTicker(l.cfg.FallbackInterval)
	defer fallback.Stop()
	ping := time.NewTicker(l.cfg.PingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("outbox listener shutting down")
			return l.pql.Close()

		case n := <-l.pql.Notify:
			if n == nil {
				// Reconnect; sweep to cover the gap.
				l.sweep(ctx)
				continue
			}
			if err := l.handleNotification(ctx, n.Extra); err != nil {
				log.Error().Err(err).Str("payload", n.Extra).Msg("failed to relay notified row")
			}

		case <-fallback.C:
			l.sweep(ctx)

		case <-ping.C:
			if err := l.pql.Ping(); err != nil {
				log.Error().Err(err).Msg("outbox listener ping failed")
			}
		}
	}
}

// handleNotification relays the single row named in the NOTIFY payload.
func (l *Listener) handleNotification(ctx context.Context, payload string) error {
	id, err := uuid.Parse(payload)
	if err != nil {
		return fmt.Errorf("notification payload %q is not a row id: %w", payload, err)
	}

	row, err := l.queries.FetchOutboxByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		// The fallback sweep got there first.
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetch outbox row: %w", err)
	}

	if err := publishWithRetry(ctx, l.pub, rowToEvent(row), l.cfg.MaxRetries, l.cfg.RetryDelay); err != nil {
		return err
	}
	if err := l.queries.MarkOutboxSent(ctx, row.ID); err != nil {
		return fmt.Errorf("mark row sent: %w", err)
	}

	log.Debug().
		Str("event_id", row.ID.String()).
		Str("event_type", row.EventType).
		Msg("relayed notified outbox row")
	return nil
}

func (l *Listener) sweep(ctx context.Context) {
	n, err := sweepUnsent(ctx, l.db, l.pub, l.cfg.BatchSize, l.cfg.MaxRetries, l.cfg.RetryDelay)
	if err != nil {
		log.Error().Err(err).Msg("outbox fallback sweep failed")
		return
	}
	if n > 0 {
		log.Info().Int("rows", n).Msg("fallback sweep relayed rows")
	}
}
