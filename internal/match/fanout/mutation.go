// Package fanout distributes partial match updates to in-process
// subscribers. It carries no durability: a subscriber that was not listening
// when a mutation went by reconciles through a fresh snapshot, not through
// replay.
package fanout

import (
	"github.com/google/uuid"
	"github.com/pitchside/pitchside/internal/models"
)

// Mutation is a partial match update. Nil fields are untouched by a merge;
// set fields replace the match's value wholesale. Events upsert by ID and
// DeletedEventIDs remove by ID, so applying the same mutation twice leaves
// the match unchanged.
type Mutation struct {
	MatchID         uuid.UUID
	Status          *models.MatchStatus
	Anchor          *models.Anchor
	HomeScore       *int
	AwayScore       *int
	Lineups         *models.Lineups
	Events          []models.MatchEvent
	DeletedEventIDs []uuid.UUID
}
