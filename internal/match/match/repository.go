package match

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
	"github.com/sqlc-dev/pqtype"
)

// Repository handles match data persistence.
type Repository struct {
	queries *db.Queries
}

// NewRepository creates a new match repository.
func NewRepository(queries *db.Queries) *Repository {
	return &Repository{queries: queries}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *sql.Tx) *Repository {
	return &Repository{queries: r.queries.WithTx(tx)}
}

// CreateMatch persists a new match.
func (r *Repository) CreateMatch(ctx context.Context, m *models.Match) (*models.Match, error) {
	anchor, err := json.Marshal(m.Anchor)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal anchor: %w", err)
	}
	config, err := json.Marshal(m.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	row, err := r.queries.CreateMatch(ctx, db.CreateMatchParams{
		ID:            m.ID,
		CompetitionID: m.CompetitionID,
		HomeTeamID:    m.HomeTeamID,
		AwayTeamID:    m.AwayTeamID,
		HomeTeamName:  m.HomeTeamName,
		AwayTeamName:  m.AwayTeamName,
		Status:        db.MatchStatus(m.Status),
		Anchor:        anchor,
		Config:        config,
		KickoffAt:     sqlutil.ToSqlTime(m.KickoffAt),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return rowToMatch(row)
}

// GetMatch retrieves a match by ID.
func (r *Repository) GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	row, err := r.queries.GetMatch(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}
	return rowToMatch(row)
}

// ListMatchesByCompetition retrieves all matches in a competition.
func (r *Repository) ListMatchesByCompetition(ctx context.Context, competitionID uuid.UUID) ([]*models.Match, error) {
	rows, err := r.queries.ListMatchesByCompetition(ctx, competitionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	matches := make([]*models.Match, 0, len(rows))
	for _, row := range rows {
		m, err := rowToMatch(row)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// TransitionMatch moves a match from one phase to another with a new anchor.
// The update is guarded on the expected current phase; if another writer got
// there first, the guard matches zero rows and ErrConflict is returned.
func (r *Repository) TransitionMatch(ctx context.Context, id uuid.UUID, from, to models.MatchStatus, anchor models.Anchor) (*models.Match, error) {
	raw, err := json.Marshal(anchor)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal anchor: %w", err)
	}

	row, err := r.queries.TransitionMatch(ctx, db.TransitionMatchParams{
		ID:         id,
		Status:     db.MatchStatus(to),
		Anchor:     raw,
		FromStatus: db.MatchStatus(from),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to transition match: %w", err)
	}
	return rowToMatch(row)
}

// UpdateAnchor replaces the anchor of a match while it stays in the given
// phase. Returns ErrConflict when the match has already left that phase.
func (r *Repository) UpdateAnchor(ctx context.Context, id uuid.UUID, status models.MatchStatus, anchor models.Anchor) (*models.Match, error) {
	raw, err := json.Marshal(anchor)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal anchor: %w", err)
	}

	row, err := r.queries.UpdateMatchAnchor(ctx, db.UpdateMatchAnchorParams{
		ID:     id,
		Anchor: raw,
		Status: db.MatchStatus(status),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to update anchor: %w", err)
	}
	return rowToMatch(row)
}

// UpdateScore sets the absolute score of a match.
func (r *Repository) UpdateScore(ctx context.Context, id uuid.UUID, home, away int) (*models.Match, error) {
	row, err := r.queries.UpdateMatchScore(ctx, db.UpdateMatchScoreParams{
		ID:        id,
		HomeScore: int32(home),
		AwayScore: int32(away),
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update score: %w", err)
	}
	return rowToMatch(row)
}

// UpdateLineups attaches lineups to a match. The update only matches while
// the match is still scheduled; afterwards ErrLineupLocked is returned.
func (r *Repository) UpdateLineups(ctx context.Context, id uuid.UUID, lineups *models.Lineups) (*models.Match, error) {
	var raw pqtype.NullRawMessage
	if lineups != nil {
		b, err := json.Marshal(lineups)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal lineups: %w", err)
		}
		raw = pqtype.NullRawMessage{RawMessage: b, Valid: true}
	}

	row, err := r.queries.UpdateMatchLineups(ctx, db.UpdateMatchLineupsParams{
		ID:      id,
		Lineups: raw,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLineupLocked
		}
		return nil, fmt.Errorf("failed to update lineups: %w", err)
	}
	return rowToMatch(row)
}

// InsertEvent appends a single event to a match's log.
func (r *Repository) InsertEvent(ctx context.Context, ev *models.MatchEvent) (*models.MatchEvent, error) {
	row, err := r.queries.InsertMatchEvent(ctx, db.InsertMatchEventParams{
		ID:          ev.ID,
		MatchID:     ev.MatchID,
		Minute:      int32(ev.Minute),
		Type:        db.MatchEventType(ev.Type),
		TeamID:      ev.TeamID,
		PlayerID:    sqlutil.ToNullUUID(ev.PlayerID),
		Description: toNullDescription(ev.Description),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to insert match event: %w", err)
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

func rowToMatch(row db.Match) (*models.Match, error) {
	var anchor models.Anchor
	if err := json.Unmarshal(row.Anchor, &anchor); err != nil {
		return nil, fmt.Errorf("failed to unmarshal anchor: %w", err)
	}
	var config models.MatchConfig
	if err := json.Unmarshal(row.Config, &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	var lineups *models.Lineups
	if row.Lineups.Valid {
		lineups = &models.Lineups{}
		if err := json.Unmarshal(row.Lineups.RawMessage, lineups); err != nil {
			return nil, fmt.Errorf("failed to unmarshal lineups: %w", err)
		}
	}

	return &models.Match{
		ID:            row.ID,
		CompetitionID: row.CompetitionID,
		HomeTeamID:    row.HomeTeamID,
		AwayTeamID:    row.AwayTeamID,
		HomeTeamName:  row.HomeTeamName,
		AwayTeamName:  row.AwayTeamName,
		Status:        models.MatchStatus(row.Status),
		Anchor:        anchor,
		Config:        config,
		HomeScore:     int(row.HomeScore),
		AwayScore:     int(row.AwayScore),
		KickoffAt:     sqlutil.FromSqlTime(row.KickoffAt),
		Lineups:       lineups,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}, nil
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

func toNullDescription(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
