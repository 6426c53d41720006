package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchStatus defines the lifecycle phase of a match.
type MatchStatus string

const (
	MatchStatusScheduled         MatchStatus = "SCHEDULED"
	MatchStatusLive              MatchStatus = "LIVE"
	MatchStatusHalftime          MatchStatus = "HALFTIME"
	MatchStatusExtraTime         MatchStatus = "EXTRA_TIME"
	MatchStatusExtraTimeHalftime MatchStatus = "EXTRA_TIME_HALFTIME"
	MatchStatusPenalties         MatchStatus = "PENALTIES"
	MatchStatusFinished          MatchStatus = "FINISHED"
)

// Running reports whether the match clock advances in this status.
func (s MatchStatus) Running() bool {
	return s == MatchStatusLive || s == MatchStatusExtraTime
}

// Anchor is the minimal snapshot needed to derive the displayed match minute
// without further server contact. It is replaced wholesale on every phase
// transition or stoppage adjustment, never mutated in place.
type Anchor struct {
	ReferenceWallClock   time.Time `json:"reference_wall_clock"`
	ReferenceMatchMinute int       `json:"reference_match_minute"`
	StoppageMinutes      int       `json:"stoppage_minutes"`
	Frozen               bool      `json:"frozen"`
}

// MatchConfig holds the configured segment lengths for a match.
type MatchConfig struct {
	HalfMinutes      int `json:"half_minutes"`
	ExtraHalfMinutes int `json:"extra_half_minutes"`
}

// DefaultMatchConfig returns the regulation football segment lengths.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		HalfMinutes:      45,
		ExtraHalfMinutes: 15,
	}
}

// Match represents a match instance.
type Match struct {
	ID            uuid.UUID    `json:"id"`
	CompetitionID uuid.UUID    `json:"competition_id"`
	HomeTeamID    uuid.UUID    `json:"home_team_id"`
	AwayTeamID    uuid.UUID    `json:"away_team_id"`
	HomeTeamName  string       `json:"home_team_name"`
	AwayTeamName  string       `json:"away_team_name"`
	Status        MatchStatus  `json:"status"`
	Anchor        Anchor       `json:"anchor"`
	Config        MatchConfig  `json:"config"`
	HomeScore     int          `json:"home_score"`
	AwayScore     int          `json:"away_score"`
	KickoffAt     *time.Time   `json:"kickoff_at,omitempty"`
	Lineups       *Lineups     `json:"lineups,omitempty"`
	Events        []MatchEvent `json:"events"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}
