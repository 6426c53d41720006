package models

import (
	"time"

	"github.com/google/uuid"
)

// EventType defines the type of an in-match occurrence.
type EventType string

const (
	EventTypeGoal         EventType = "GOAL"
	EventTypeYellowCard   EventType = "YELLOW_CARD"
	EventTypeRedCard      EventType = "RED_CARD"
	EventTypeSubstitution EventType = "SUBSTITUTION"
	EventTypeVAR          EventType = "VAR"
	EventTypePhaseChange  EventType = "PHASE_CHANGE"
)

// MatchEvent represents one occurrence within a match. Events are immutable
// once created; the only correction path is deletion.
type MatchEvent struct {
	ID          uuid.UUID  `json:"id"`
	MatchID     uuid.UUID  `json:"match_id"`
	Minute      int        `json:"minute"`
	Type        EventType  `json:"type"`
	TeamID      uuid.UUID  `json:"team_id"`
	PlayerID    *uuid.UUID `json:"player_id,omitempty"`
	Description string     `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
