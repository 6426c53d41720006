package models

import "github.com/google/uuid"

// LineupRole defines a player's role within a lineup.
type LineupRole string

const (
	LineupRoleStarter    LineupRole = "STARTER"
	LineupRoleSubstitute LineupRole = "SUBSTITUTE"
)

// LineupSlot ties a player to a role in a lineup.
type LineupSlot struct {
	PlayerID uuid.UUID  `json:"player_id"`
	Role     LineupRole `json:"role"`
	Captain  bool       `json:"captain,omitempty"`
}

// Lineup is one side's set of players for a match.
type Lineup struct {
	TeamID uuid.UUID    `json:"team_id"`
	Slots  []LineupSlot `json:"slots"`
}

// Lineups holds both sides' lineups. Stored as JSONB alongside the match and
// amendable only while the match is still SCHEDULED.
type Lineups struct {
	Home Lineup `json:"home"`
	Away Lineup `json:"away"`
}
