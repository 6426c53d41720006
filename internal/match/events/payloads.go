package events

import (
	"time"

	"github.com/pitchside/pitchside/internal/models"
)

// Event payload types shared between the match apps, the outbox relay and the
// gateway. Every payload describes a partial-match mutation; subscribers merge
// it into their cached copy instead of re-fetching the whole entity.

// Outbox event type names.
const (
	TypePhaseChanged    = "PhaseChanged"
	TypeScoreUpdated    = "ScoreUpdated"
	TypeStoppageSet     = "StoppageSet"
	TypeEventRecorded   = "EventRecorded"
	TypeEventDeleted    = "EventDeleted"
	TypeLineupSubmitted = "LineupSubmitted"
)

// PhaseChangedPayload is the payload for a PhaseChanged event.
type PhaseChangedPayload struct {
	MatchID    string             `json:"match_id"`
	Transition string             `json:"transition"`
	FromStatus models.MatchStatus `json:"from_status"`
	ToStatus   models.MatchStatus `json:"to_status"`
	Anchor     models.Anchor      `json:"anchor"`
	Event      *models.MatchEvent `json:"event,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// ScoreUpdatedPayload is the payload for a ScoreUpdated event.
type ScoreUpdatedPayload struct {
	MatchID    string    `json:"match_id"`
	HomeScore  int       `json:"home_score"`
	AwayScore  int       `json:"away_score"`
	OccurredAt time.Time `json:"occurred_at"`
}

// StoppageSetPayload is the payload for a StoppageSet event. The anchor is
// included whole: stoppage adjustments replace the anchor like any other
// anchor change.
type StoppageSetPayload struct {
	MatchID         string        `json:"match_id"`
	StoppageMinutes int           `json:"stoppage_minutes"`
	Anchor          models.Anchor `json:"anchor"`
	OccurredAt      time.Time     `json:"occurred_at"`
}

// EventRecordedPayload is the payload for an EventRecorded event.
type EventRecordedPayload struct {
	MatchID string            `json:"match_id"`
	Event   models.MatchEvent `json:"event"`
}

// EventDeletedPayload is the payload for an EventDeleted event.
type EventDeletedPayload struct {
	MatchID    string    `json:"match_id"`
	EventID    string    `json:"event_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// LineupSubmittedPayload is the payload for a LineupSubmitted event.
type LineupSubmittedPayload struct {
	MatchID    string         `json:"match_id"`
	Lineups    models.Lineups `json:"lineups"`
	OccurredAt time.Time      `json:"occurred_at"`
}
