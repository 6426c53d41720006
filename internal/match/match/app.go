package match

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pitchside/pitchside/internal/match/events"
	"github.com/pitchside/pitchside/internal/models"
	"github.com/pitchside/pitchside/internal/sqlutil"
)

// App orchestrates a match's phase machine. All phase changes go through
// ApplyTransition, which validates the requested edge against the current
// phase, swaps in the anchor for the new phase, appends a PHASE_CHANGE event
// and queues the outbox notification, all in one transaction. The phase guard
// on the UPDATE makes the database the arbiter when two operators race: the
// loser's guard matches zero rows and the request fails with ErrConflict.
type App struct {
	repo  *Repository
	db    *sql.DB
	clock clockwork.Clock
}

// NewApp creates a new match App.
func NewApp(repo *Repository, database *sql.DB, clock clockwork.Clock) *App {
	return &App{
		repo:  repo,
		db:    database,
		clock: clock,
	}
}

// edge describes one legal transition of the phase machine. The anchor
// function computes the replacement anchor from the wall clock and the match
// as it was before the transition.
type edge struct {
	from   []models.MatchStatus
	to     models.MatchStatus
	anchor func(now time.Time, m *models.Match) models.Anchor
}

var transitions = map[Transition]edge{
	TransitionStart: {
		from: []models.MatchStatus{models.MatchStatusScheduled},
		to:   models.MatchStatusLive,
		anchor: func(now time.Time, m *models.Match) models.Anchor {
			return models.Anchor{ReferenceWallClock: now, ReferenceMatchMinute: 0}
		},
	},
	TransitionHalftime: {
		from: []models.MatchStatus{models.MatchStatusLive},
		to:   models.MatchStatusHalftime,
		anchor: func(now time.Time, m *models.Match) models.Anchor {
			return frozenAnchor(now, m.Config.HalfMinutes)
		},
	},
	TransitionSecondHalf: {
		from: []models.MatchStatus{models.MatchStatusHalftime},
		to:   models.MatchStatusLive,
		anchor: func(now time.Time, m *models.Match) models.Anchor {
			return models.Anchor{ReferenceWallClock: now, ReferenceMatchMinute: m.Config.HalfMinutes}
		},
	},
	TransitionExtraTime: {
		from: []models.MatchStatus{models.MatchStatusLive},
		to:   models.MatchStatusExtraTime,
		anchor: func(now time.Time, m *models.Match) models.Anchor {
			return models.Anchor{ReferenceWallClock: now, ReferenceMatchMinute: 2 * m.Config.HalfMinutes}
		},
	},
	TransitionExtraHalftime: {
		from: []models.MatchStatus{models.MatchStatusExtraTime},
		to:   models.MatchStatusExtraTimeHalftime,
		anchor: func(now time.Time, m *models.Match) models.Anchor {
			return frozenAnchor(now, 2*m.Config.HalfMinutes+m.Config.ExtraHalfMinutes)
		},
	},
	TransitionExtraSecondHalf: {
		from: []models.MatchStatus{models.MatchStatusExtraTimeHalftime},
		to:   models.MatchStatusExtraTime,
		anchor: func(now time.Time, m *models.Match) models.Anchor {
			return models.Anchor{ReferenceWallClock: now, ReferenceMatchMinute: 2*m.Config.HalfMinutes + m.Config.ExtraHalfMinutes}
		},
	},
	TransitionPenalties: {
		from: []models.MatchStatus{models.MatchStatusExtraTime},
		to:   models.MatchStatusPenalties,
		anchor: func(now time.Time, m *models.Match) models.Anchor {
			return frozenAnchor(now, fullTimeMinute(m))
		},
	},
	TransitionEnd: {
		from: []models.MatchStatus{
			models.MatchStatusScheduled,
			models.MatchStatusLive,
			models.MatchStatusHalftime,
			models.MatchStatusExtraTime,
			models.MatchStatusExtraTimeHalftime,
			models.MatchStatusPenalties,
		},
		to: models.MatchStatusFinished,
		anchor: func(now time.Time, m *models.Match) models.Anchor {
			if m.Anchor.Frozen {
				// Already frozen minute (halftime, penalties, abandonment
				// before kickoff), keep it.
				return frozenAnchor(now, m.Anchor.ReferenceMatchMinute)
			}
			return frozenAnchor(now, fullTimeMinute(m))
		},
	},
}

func frozenAnchor(now time.Time, minute int) models.Anchor {
	return models.Anchor{
		ReferenceWallClock:   now,
		ReferenceMatchMinute: minute,
		Frozen:               true,
	}
}

// fullTimeMinute is the boundary minute of the phase the match is currently
// running in.
func fullTimeMinute(m *models.Match) int {
	if m.Status == models.MatchStatusExtraTime {
		return 2*m.Config.HalfMinutes + 2*m.Config.ExtraHalfMinutes
	}
	return 2 * m.Config.HalfMinutes
}

// CreateMatch schedules a new match.
func (a *App) CreateMatch(ctx context.Context, req CreateMatchRequest) (*models.Match, error) {
	if req.HomeTeamID == uuid.Nil || req.AwayTeamID == uuid.Nil {
		return nil, fmt.Errorf("both teams are required")
	}
	if req.HomeTeamID == req.AwayTeamID {
		return nil, fmt.Errorf("a team cannot play itself")
	}
	if req.HomeTeamName == "" || req.AwayTeamName == "" {
		return nil, fmt.Errorf("both team names are required")
	}

	config := models.DefaultMatchConfig()
	if req.Config != nil {
		if req.Config.HalfMinutes <= 0 || req.Config.ExtraHalfMinutes <= 0 {
			return nil, fmt.Errorf("match config minutes must be positive")
		}
		config = *req.Config
	}

	var kickoff *time.Time
	if req.KickoffAt != nil {
		t := time.Unix(*req.KickoffAt, 0).UTC()
		kickoff = &t
	}

	m := &models.Match{
		ID:            uuid.New(),
		CompetitionID: req.CompetitionID,
		HomeTeamID:    req.HomeTeamID,
		AwayTeamID:    req.AwayTeamID,
		HomeTeamName:  req.HomeTeamName,
		AwayTeamName:  req.AwayTeamName,
		Status:        models.MatchStatusScheduled,
		Anchor:        models.Anchor{Frozen: true},
		Config:        config,
		KickoffAt:     kickoff,
	}

	created, err := a.repo.CreateMatch(ctx, m)
	if err != nil {
		return nil, err
	}
	log.Printf("Created match %s: %s vs %s", created.ID, created.HomeTeamName, created.AwayTeamName)
	return created, nil
}

// GetMatch retrieves a match with its full event log.
func (a *App) GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error) {
	m, err := a.repo.GetMatch(ctx, id)
	if err != nil {
		return nil, err
	}
	evts, err := a.repo.ListEvents(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Events = evts
	return m, nil
}

// ListMatchesByCompetition retrieves all matches in a competition.
func (a *App) ListMatchesByCompetition(ctx context.Context, competitionID uuid.UUID) ([]*models.Match, error) {
	return a.repo.ListMatchesByCompetition(ctx, competitionID)
}

// ApplyTransition moves a match along a named edge of the phase machine.
func (a *App) ApplyTransition(ctx context.Context, req TransitionRequest) (*models.Match, error) {
	if !req.Transition.Valid() {
		return nil, fmt.Errorf("%w: unknown transition %q", ErrInvalidTransition, req.Transition)
	}
	e := transitions[req.Transition]

	m, err := a.repo.GetMatch(ctx, req.MatchID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, s := range e.from {
		if m.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: cannot apply %q while %s", ErrInvalidTransition, req.Transition, m.Status)
	}

	now := a.clock.Now().UTC()
	anchor := e.anchor(now, m)

	var updated *models.Match
	err = sqlutil.Run(ctx, a.db, a.repo.WithTx, func(r *Repository) error {
		updated, err = r.TransitionMatch(ctx, req.MatchID, m.Status, e.to, anchor)
		if err != nil {
			return err
		}

		ev, err := r.InsertEvent(ctx, &models.MatchEvent{
			ID:          uuid.New(),
			MatchID:     req.MatchID,
			Minute:      anchor.ReferenceMatchMinute,
			Type:        models.EventTypePhaseChange,
			TeamID:      uuid.Nil,
			Description: string(req.Transition),
		})
		if err != nil {
			return err
		}

		return r.InsertOutbox(ctx, req.MatchID, events.TypePhaseChanged, events.PhaseChangedPayload{
			MatchID:    req.MatchID.String(),
			Transition: string(req.Transition),
			FromStatus: m.Status,
			ToStatus:   e.to,
			Anchor:     anchor,
			Event:      ev,
			OccurredAt: now,
		})
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Match %s: %s -> %s (%s)", req.MatchID, m.Status, e.to, req.Transition)
	return updated, nil
}

// SetStoppage announces stoppage minutes for the phase the match is currently
// running. The adjustment stays within that phase: the next transition
// replaces the anchor and the stoppage with it.
func (a *App) SetStoppage(ctx context.Context, req SetStoppageRequest) (*models.Match, error) {
	if req.Minutes < 0 {
		return nil, fmt.Errorf("stoppage minutes cannot be negative")
	}

	m, err := a.repo.GetMatch(ctx, req.MatchID)
	if err != nil {
		return nil, err
	}
	if !m.Status.Running() {
		return nil, fmt.Errorf("%w: stoppage requires a running phase, match is %s", ErrInvalidTransition, m.Status)
	}

	anchor := m.Anchor
	anchor.StoppageMinutes = req.Minutes

	var updated *models.Match
	err = sqlutil.Run(ctx, a.db, a.repo.WithTx, func(r *Repository) error {
		updated, err = r.UpdateAnchor(ctx, req.MatchID, m.Status, anchor)
		if err != nil {
			return err
		}
		return r.InsertOutbox(ctx, req.MatchID, events.TypeStoppageSet, events.StoppageSetPayload{
			MatchID:         req.MatchID.String(),
			StoppageMinutes: req.Minutes,
			Anchor:          anchor,
			OccurredAt:      a.clock.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Match %s: stoppage set to +%d", req.MatchID, req.Minutes)
	return updated, nil
}

// UpdateScore sets the absolute score of a match.
func (a *App) UpdateScore(ctx context.Context, req UpdateScoreRequest) (*models.Match, error) {
	if req.HomeScore < 0 || req.AwayScore < 0 {
		return nil, fmt.Errorf("score cannot be negative")
	}

	var updated *models.Match
	err := sqlutil.Run(ctx, a.db, a.repo.WithTx, func(r *Repository) error {
		var err error
		updated, err = r.UpdateScore(ctx, req.MatchID, req.HomeScore, req.AwayScore)
		if err != nil {
			return err
		}
		return r.InsertOutbox(ctx, req.MatchID, events.TypeScoreUpdated, events.ScoreUpdatedPayload{
			MatchID:    req.MatchID.String(),
			HomeScore:  req.HomeScore,
			AwayScore:  req.AwayScore,
			OccurredAt: a.clock.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SubmitLineup attaches pre-match lineups to a scheduled match.
func (a *App) SubmitLineup(ctx context.Context, req SubmitLineupRequest) (*models.Match, error) {
	m, err := a.repo.GetMatch(ctx, req.MatchID)
	if err != nil {
		return nil, err
	}
	if req.Lineups.Home.TeamID != m.HomeTeamID || req.Lineups.Away.TeamID != m.AwayTeamID {
		return nil, fmt.Errorf("lineup team IDs do not match the fixture")
	}
	for _, l := range []models.Lineup{req.Lineups.Home, req.Lineups.Away} {
		if len(l.Slots) == 0 {
			return nil, fmt.Errorf("lineup for team %s is empty", l.TeamID)
		}
		seen := make(map[uuid.UUID]bool, len(l.Slots))
		for _, slot := range l.Slots {
			if slot.PlayerID == uuid.Nil {
				return nil, fmt.Errorf("lineup slot is missing a player")
			}
			if seen[slot.PlayerID] {
				return nil, fmt.Errorf("player %s appears twice in lineup", slot.PlayerID)
			}
			seen[slot.PlayerID] = true
			if slot.Role != models.LineupRoleStarter && slot.Role != models.LineupRoleSubstitute {
				return nil, fmt.Errorf("invalid lineup role %q", slot.Role)
			}
		}
	}

	var updated *models.Match
	err = sqlutil.Run(ctx, a.db, a.repo.WithTx, func(r *Repository) error {
		updated, err = r.UpdateLineups(ctx, req.MatchID, &req.Lineups)
		if err != nil {
			return err
		}
		return r.InsertOutbox(ctx, req.MatchID, events.TypeLineupSubmitted, events.LineupSubmittedPayload{
			MatchID:    req.MatchID.String(),
			Lineups:    req.Lineups,
			OccurredAt: a.clock.Now().UTC(),
		})
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
