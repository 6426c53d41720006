package eventlog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pitchside/pitchside/internal/match/events"
	"github.com/pitchside/pitchside/internal/models"
	"github.com/pitchside/pitchside/internal/sqlutil"
)

var (
	// ErrEventNotFound indicates the requested event does not exist.
	ErrEventNotFound = errors.New("match event not found")

	// ErrInvalidEvent indicates the event record failed validation.
	ErrInvalidEvent = errors.New("invalid event record")
)

const maxDescriptionLen = 500

// MatchGetter is the slice of the match app the event log needs: enough to
// validate an incoming record against the fixture.
type MatchGetter interface {
	GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
}

// App manages a match's append-only event log. Records are validated against
// the fixture, appended together with their outbox notification, and removed
// idempotently: deleting an event that is already gone succeeds without
// publishing anything.
type App struct {
	repo    *Repository
	db      *sql.DB
	matches MatchGetter
	clock   clockwork.Clock
}

// NewApp creates a new event log App.
func NewApp(repo *Repository, database *sql.DB, matches MatchGetter, clock clockwork.Clock) *App {
	return &App{
		repo:    repo,
		db:      database,
		matches: matches,
		clock:   clock,
	}
}

// RecordEventRequest carries the fields of a new event record.
type RecordEventRequest struct {
	MatchID     uuid.UUID
	Minute      int
	Type        models.EventType
	TeamID      uuid.UUID
	PlayerID    *uuid.UUID
	Description string
}

// Record validates and appends an event to a match's log.
func (a *App) Record(ctx context.Context, req RecordEventRequest) (*models.MatchEvent, error) {
	if err := validateRecord(req); err != nil {
		return nil, err
	}

	m, err := a.matches.GetMatch(ctx, req.MatchID)
	if err != nil {
		return nil, err
	}
	if m.Status == models.MatchStatusScheduled {
		return nil, fmt.Errorf("%w: match has not started", ErrInvalidEvent)
	}
	if req.TeamID != m.HomeTeamID && req.TeamID != m.AwayTeamID {
		return nil, fmt.Errorf("%w: team %s is not playing in this match", ErrInvalidEvent, req.TeamID)
	}

	ev := &models.MatchEvent{
		ID:          uuid.New(),
		MatchID:     req.MatchID,
		Minute:      req.Minute,
		Type:        req.Type,
		TeamID:      req.TeamID,
		PlayerID:    req.PlayerID,
		Description: req.Description,
	}

	var created *models.MatchEvent
	err = sqlutil.Run(ctx, a.db, a.repo.WithTx, func(r *Repository) error {
		created, err = r.InsertEvent(ctx, ev)
		if err != nil {
			return err
		}
		return r.InsertOutbox(ctx, req.MatchID, events.TypeEventRecorded, events.EventRecordedPayload{
			MatchID: req.MatchID.String(),
			Event:   *created,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Match %s: recorded %s at %d'", req.MatchID, req.Type, req.Minute)
	return created, nil
}

// Delete removes an event from a match's log. Deleting an event that no
// longer exists is not an error; the operation is safe to retry.
func (a *App) Delete(ctx context.Context, matchID, eventID uuid.UUID) error {
	return sqlutil.Run(ctx, a.db, a.repo.WithTx, func(r *Repository) error {
		n, err := r.DeleteEvent(ctx, matchID, eventID)
		if err != nil {
			return err
		}
		if n == 0 {
			return nil
		}
		return r.InsertOutbox(ctx, matchID, events.TypeEventDeleted, events.EventDeletedPayload{
			MatchID:    matchID.String(),
			EventID:    eventID.String(),
			OccurredAt: a.clock.Now().UTC(),
		})
	})
}

// List returns a match's events in append order.
func (a *App) List(ctx context.Context, matchID uuid.UUID) ([]models.MatchEvent, error) {
	return a.repo.ListEvents(ctx, matchID)
}

func validateRecord(req RecordEventRequest) error {
	if req.Minute < 0 {
		return fmt.Errorf("%w: minute cannot be negative", ErrInvalidEvent)
	}
	switch req.Type {
	case models.EventTypeGoal, models.EventTypeYellowCard, models.EventTypeRedCard,
		models.EventTypeSubstitution, models.EventTypeVAR:
	case models.EventTypePhaseChange:
		return fmt.Errorf("%w: phase changes are recorded by the phase controller", ErrInvalidEvent)
	default:
		return fmt.Errorf("%w: unknown event type %q", ErrInvalidEvent, req.Type)
	}
	if req.TeamID == uuid.Nil {
		return fmt.Errorf("%w: team is required", ErrInvalidEvent)
	}
	if req.PlayerID != nil && *req.PlayerID == uuid.Nil {
		return fmt.Errorf("%w: player ID cannot be empty", ErrInvalidEvent)
	}
	if len(req.Description) > maxDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalidEvent, maxDescriptionLen)
	}
	return nil
}
