package match

import (
	"github.com/google/uuid"
	"github.com/pitchside/pitchside/internal/models"
)

// Transition identifies a named edge in the match phase machine. Operators
// request transitions by name; the app resolves the edge against the match's
// current phase.
type Transition string

const (
	TransitionStart           Transition = "start"
	TransitionHalftime        Transition = "halftime"
	TransitionSecondHalf      Transition = "second_half"
	TransitionExtraTime       Transition = "extra_time"
	TransitionExtraHalftime   Transition = "extra_halftime"
	TransitionExtraSecondHalf Transition = "extra_second_half"
	TransitionPenalties       Transition = "penalties"
	TransitionEnd             Transition = "end"
)

// Valid returns true when t names a known transition.
func (t Transition) Valid() bool {
	switch t {
	case TransitionStart, TransitionHalftime, TransitionSecondHalf,
		TransitionExtraTime, TransitionExtraHalftime, TransitionExtraSecondHalf,
		TransitionPenalties, TransitionEnd:
		return true
	}
	return false
}

// CreateMatchRequest carries the fields needed to schedule a new match.
type CreateMatchRequest struct {
	CompetitionID uuid.UUID
	HomeTeamID    uuid.UUID
	AwayTeamID    uuid.UUID
	HomeTeamName  string
	AwayTeamName  string
	KickoffAt     *int64 // unix seconds, nil when not yet announced
	Config        *models.MatchConfig
}

// TransitionRequest asks the phase controller to move a match along a named
// edge.
type TransitionRequest struct {
	MatchID    uuid.UUID
	Transition Transition
}

// SetStoppageRequest sets the announced stoppage minutes for the currently
// running phase.
type SetStoppageRequest struct {
	MatchID uuid.UUID
	Minutes int
}

// UpdateScoreRequest sets the absolute score for a match.
type UpdateScoreRequest struct {
	MatchID   uuid.UUID
	HomeScore int
	AwayScore int
}

// SubmitLineupRequest attaches pre-match lineups to a scheduled match.
type SubmitLineupRequest struct {
	MatchID uuid.UUID
	Lineups models.Lineups
}
