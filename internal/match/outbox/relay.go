package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	matchdb "github.com/pitchside/pitchside/internal/match/db"
)

func rowToEvent(row matchdb.MatchOutbox) OutboxEvent {
	ev := OutboxEvent{
		ID:        row.ID,
		MatchID:   row.MatchID,
		EventType: row.EventType,
		Payload:   row.Payload,
		CreatedAt: row.CreatedAt,
	}
	if row.SentAt.Valid {
		t := row.SentAt.Time
		ev.SentAt = &t
	}
	return ev
}

// publishWithRetry delivers one event, retrying transient bus failures with a
// flat delay. The caller marks the row sent only after this succeeds, so a
// crash mid-retry re-delivers rather than loses.
func publishWithRetry(ctx context.Context, pub Publisher, ev OutboxEvent, attempts int, delay time.Duration) error {
	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := pub.Publish(ctx, ev); err != nil {
			lastErr = err
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			continue
		}
		return nil
	}
	return fmt.Errorf("publish after %d attempts: %w", attempts, lastErr)
}

// sweepUnsent publishes a batch of unsent rows inside one transaction. The
// FOR UPDATE SKIP LOCKED fetch lets several relays run against the same table
// without double-publishing; JetStream msg-ID dedupe covers the crash window
// between publish and commit. Returns how many rows were marked sent.
func sweepUnsent(ctx context.Context, database *sql.DB, pub Publisher, batchSize int32, attempts int, delay time.Duration) (int, error) {
	tx, err := database.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin sweep: %w", err)
	}
	defer tx.Rollback()

	rows, err := matchdb.New(tx).FetchUnsentOutbox(ctx, batchSize)
	if err != nil {
		return 0, fmt.Errorf("fetch unsent rows: %w", err)
	}
	if len(rows) == 0 {
		return 0, nil
	}

	sent := make([]uuid.UUID, 0, len(rows))
	for _, row := range rows {
		if err := publishWithRetry(ctx, pub, rowToEvent(row), attempts, delay); err != nil {
			// Leave the row unsent; the next sweep picks it up.
			continue
		}
		sent = append(sent, row.ID)
	}
	if len(sent) == 0 {
		return 0, nil
	}

	if err := matchdb.New(tx).MarkOutboxSentBatch(ctx, sent); err != nil {
		return 0, fmt.Errorf("mark rows sent: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit sweep: %w", err)
	}
	return len(sent), nil
}
