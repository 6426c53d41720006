package eventlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pitchside/pitchside/internal/match/db"
	"github.com/pitchside/pitchside/internal/models"
	"github.com/pitchside/pitchside/internal/sqlutil"
)

// Repository handles match event persistence.
type Repository struct {
	queries *db.Queries
}

// NewRepository creates a new event log repository.
func NewRepository(queries *db.Queries) *Repository {
	return &Repository{queries: queries}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *sql.Tx) *Repository {
	return &Repository{queries: r.queries.WithTx(tx)}
}

// InsertEvent appends an event to a match's log.
func (r *Repository) InsertEvent(ctx context.Context, ev *models.MatchEvent) (*models.MatchEvent, error) {
	row, err := r.queries.InsertMatchEvent(ctx, db.InsertMatchEventParams{
		ID:          ev.ID,
		MatchID:     ev.MatchID,
		Minute:      int32(ev.Minute),
		Type:        db.MatchEventType(ev.Type),
		TeamID:      ev.TeamID,
		PlayerID:    sqlutil.ToNullUUID(ev.PlayerID),
		Description: sqlutil.ToSqlString(optional(ev.Description)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert match event: %w", err)
	}
	out := rowToEvent(row)
	return &out, nil
}

// GetEvent retrieves a single event by ID.
func (r *Repository) GetEvent(ctx context.Context, id uuid.UUID) (*models.MatchEvent, error) {
	row, err := r.queries.GetMatchEvent(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get match event: %w", err)
	}
	out := rowToEvent(row)
	return &out, nil
}

// ListEvents returns a match's events in append order.
func (r *Repository) ListEvents(ctx context.Context, matchID uuid.UUID) ([]models.MatchEvent, error) {
	rows, err := r.queries.ListMatchEvents(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list match events: %w", err)
	}
	events := make([]models.MatchEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, rowToEvent(row))
	}
	return events, nil
}

// DeleteEvent removes an event from a match's log. Returns the number of rows
// removed, which is zero when the event was already gone.
func (r *Repository) DeleteEvent(ctx context.Context, matchID, eventID uuid.UUID) (int64, error) {
	n, err := r.queries.DeleteMatchEvent(ctx, db.DeleteMatchEventParams{
		ID:      eventID,
		MatchID: matchID,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete match event: %w", err)
	}
	return n, nil
}

// InsertOutbox records an event in the outbox table for later publishing.
func (r *Repository) InsertOutbox(ctx context.Context, matchID uuid.UUID, eventType string, payload any) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal outbox payload: %w", err)
	}
	if err := r.queries.InsertOutbox(ctx, db.InsertOutboxParams{
		ID:        uuid.New(),
		MatchID:   matchID,
		EventType: eventType,
		Payload:   raw,
	}); err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}
	return nil
}

func rowToEvent(row db.MatchEvent) models.MatchEvent {
	return models.MatchEvent{
		ID:          row.ID,
		MatchID:     row.MatchID,
		Minute:      int(row.Minute),
		Type:        models.EventType(row.Type),
		TeamID:      row.TeamID,
		PlayerID:    sqlutil.FromNullUUID(row.PlayerID),
		Description: row.Description.String,
		CreatedAt:   row.CreatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
