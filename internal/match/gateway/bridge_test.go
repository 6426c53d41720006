package gateway

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitchside/pitchside/internal/match/events"
	"github.com/pitchside/pitchside/internal/models"
)

func mustMarshal(t *testing.T, v any) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestPayloadToMutationPhaseChanged(t *testing.T) {
	matchID := uuid.New()
	anchor := models.Anchor{ReferenceWallClock: time.Now().UTC().Truncate(time.Second), ReferenceMatchMinute: 45}
	ev := &models.MatchEvent{ID: uuid.New(), MatchID: matchID, Minute: 45, Type: models.EventTypePhaseChange}
	payload := mustMarshal(t, events.PhaseChangedPayload{
		MatchID:    matchID.String(),
		Transition: "second_half",
		FromStatus: models.MatchStatusHalftime,
		ToStatus:   models.MatchStatusLive,
		Anchor:     anchor,
		Event:      ev,
	})

	mut, err := PayloadToMutation(matchID, events.TypePhaseChanged, payload)
	require.NoError(t, err)
	assert.Equal(t, matchID, mut.MatchID)
	require.NotNil(t, mut.Status)
	assert.Equal(t, models.MatchStatusLive, *mut.Status)
	require.NotNil(t, mut.Anchor)
	assert.Equal(t, 45, mut.Anchor.ReferenceMatchMinute)
	require.Len(t, mut.Events, 1)
	assert.Equal(t, ev.ID, mut.Events[0].ID)
}

func TestPayloadToMutationScoreUpdated(t *testing.T) {
	matchID := uuid.New()
	payload := mustMarshal(t, events.ScoreUpdatedPayload{
		MatchID:   matchID.String(),
		HomeScore: 2,
		AwayScore: 1,
	})

	mut, err := PayloadToMutation(matchID, events.TypeScoreUpdated, payload)
	require.NoError(t, err)
	require.NotNil(t, mut.HomeScore)
	require.NotNil(t, mut.AwayScore)
	assert.Equal(t, 2, *mut.HomeScore)
	assert.Equal(t, 1, *mut.AwayScore)
	assert.Nil(t, mut.Status)
}

func TestPayloadToMutationStoppageSet(t *testing.T) {
	matchID := uuid.New()
	payload := mustMarshal(t, events.StoppageSetPayload{
		MatchID:         matchID.String(),
		StoppageMinutes: 4,
		Anchor:          models.Anchor{ReferenceMatchMinute: 0, StoppageMinutes: 4},
	})

	mut, err := PayloadToMutation(matchID, events.TypeStoppageSet, payload)
	require.NoError(t, err)
	require.NotNil(t, mut.Anchor)
	assert.Equal(t, 4, mut.Anchor.StoppageMinutes)
}

func TestPayloadToMutationEventRecorded(t *testing.T) {
	matchID := uuid.New()
	ev := models.MatchEvent{ID: uuid.New(), MatchID: matchID, Minute: 12, Type: models.EventTypeGoal, TeamID: uuid.New()}
	payload := mustMarshal(t, events.EventRecordedPayload{MatchID: matchID.String(), Event: ev})

	mut, err := PayloadToMutation(matchID, events.TypeEventRecorded, payload)
	require.NoError(t, err)
	require.Len(t, mut.Events, 1)
	assert.Equal(t, ev.ID, mut.Events[0].ID)
	assert.Equal(t, models.EventTypeGoal, mut.Events[0].Type)
}

func TestPayloadToMutationEventDeleted(t *testing.T) {
	matchID := uuid.New()
	eventID := uuid.New()
	payload := mustMarshal(t, events.EventDeletedPayload{MatchID: matchID.String(), EventID: eventID.String()})

	mut, err := PayloadToMutation(matchID, events.TypeEventDeleted, payload)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{eventID}, mut.DeletedEventIDs)
}

func TestPayloadToMutationLineupSubmitted(t *testing.T) {
	matchID := uuid.New()
	lineups := models.Lineups{
		Home: models.Lineup{TeamID: uuid.New(), Slots: []models.LineupSlot{{PlayerID: uuid.New(), Role: models.LineupRoleStarter}}},
		Away: models.Lineup{TeamID: uuid.New(), Slots: []models.LineupSlot{{PlayerID: uuid.New(), Role: models.LineupRoleStarter}}},
	}
	payload := mustMarshal(t, events.LineupSubmittedPayload{MatchID: matchID.String(), Lineups: lineups})

	mut, err := PayloadToMutation(matchID, events.TypeLineupSubmitted, payload)
	require.NoError(t, err)
	require.NotNil(t, mut.Lineups)
	assert.Equal(t, lineups.Home.TeamID, mut.Lineups.Home.TeamID)
}

func TestPayloadToMutationRejectsUnknownType(t *testing.T) {
	_, err := PayloadToMutation(uuid.New(), "match.renamed", json.RawMessage(`{}`))
	assert.Error(t, err)
}

func TestPayloadToMutationRejectsMalformedPayload(t *testing.T) {
	_, err := PayloadToMutation(uuid.New(), events.TypeScoreUpdated, json.RawMessage(`{not json`))
	assert.Error(t, err)

	_, err = PayloadToMutation(uuid.New(), events.TypeEventDeleted, mustMarshal(t, events.EventDeletedPayload{EventID: "not-a-uuid"}))
	assert.Error(t, err)
}
