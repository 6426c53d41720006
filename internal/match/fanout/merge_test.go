package fanout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pitchside/pitchside/internal/models"
)

func baseMatch() *models.Match {
	return &models.Match{
		ID:           uuid.New(),
		HomeTeamID:   uuid.New(),
		AwayTeamID:   uuid.New(),
		HomeTeamName: "Rovers",
		AwayTeamName: "Athletic",
		Status:       models.MatchStatusLive,
		HomeScore:    1,
		AwayScore:    0,
		Config:       models.DefaultMatchConfig(),
	}
}

func TestMergeSetFieldsReplaceWholesale(t *testing.T) {
	m := baseMatch()
	status := models.MatchStatusHalftime
	anchor := models.Anchor{ReferenceMatchMinute: 45, Frozen: true}
	home, away := 2, 1

	out := Merge(m, Mutation{
		MatchID:   m.ID,
		Status:    &status,
		Anchor:    &anchor,
		HomeScore: &home,
		AwayScore: &away,
	})

	assert.Equal(t, models.MatchStatusHalftime, out.Status)
	assert.Equal(t, anchor, out.Anchor)
	assert.Equal(t, 2, out.HomeScore)
	assert.Equal(t, 1, out.AwayScore)
}

func TestMergeLeavesUnsetFieldsAlone(t *testing.T) {
	m := baseMatch()
	home := 2

	out := Merge(m, Mutation{MatchID: m.ID, HomeScore: &home})

	assert.Equal(t, models.MatchStatusLive, out.Status)
	assert.Equal(t, 0, out.AwayScore)
	assert.Equal(t, m.HomeTeamName, out.HomeTeamName)
}

func TestMergeDoesNotModifyInput(t *testing.T) {
	m := baseMatch()
	ev := models.MatchEvent{ID: uuid.New(), MatchID: m.ID, Type: models.EventTypeGoal}
	home := 5

	Merge(m, Mutation{MatchID: m.ID, HomeScore: &home, Events: []models.MatchEvent{ev}})

	assert.Equal(t, 1, m.HomeScore)
	assert.Empty(t, m.Events)
}

func TestMergeUpsertsEventsByID(t *testing.T) {
	m := baseMatch()
	ev := models.MatchEvent{ID: uuid.New(), MatchID: m.ID, Minute: 12, Type: models.EventTypeGoal}
	m.Events = []models.MatchEvent{ev}

	corrected := ev
	corrected.Minute = 13
	out := Merge(m, Mutation{MatchID: m.ID, Events: []models.MatchEvent{corrected}})
	assert.Len(t, out.Events, 1)
	assert.Equal(t, 13, out.Events[0].Minute)

	fresh := models.MatchEvent{ID: uuid.New(), MatchID: m.ID, Minute: 30, Type: models.EventTypeYellowCard}
	out = Merge(m, Mutation{MatchID: m.ID, Events: []models.MatchEvent{fresh}})
	assert.Len(t, out.Events, 2)
}

func TestMergeRemovesDeletedEvents(t *testing.T) {
	m := baseMatch()
	keep := models.MatchEvent{ID: uuid.New(), MatchID: m.ID, Minute: 12, Type: models.EventTypeGoal}
	drop := models.MatchEvent{ID: uuid.New(), MatchID: m.ID, Minute: 30, Type: models.EventTypeRedCard}
	m.Events = []models.MatchEvent{keep, drop}

	out := Merge(m, Mutation{MatchID: m.ID, DeletedEventIDs: []uuid.UUID{drop.ID}})

	assert.Len(t, out.Events, 1)
	assert.Equal(t, keep.ID, out.Events[0].ID)
}

func TestMergeIsIdempotent(t *testing.T) {
	m := baseMatch()
	status := models.MatchStatusExtraTime
	home := 2
	ev := models.MatchEvent{ID: uuid.New(), MatchID: m.ID, Minute: 78, Type: models.EventTypeGoal}
	mut := Mutation{
		MatchID:   m.ID,
		Status:    &status,
		HomeScore: &home,
		Events:    []models.MatchEvent{ev},
	}

	once := Merge(m, mut)
	twice := Merge(once, mut)

	assert.Equal(t, once, twice, "re-applying the same mutation must not change the result")
}

func TestMergeIgnoresForeignMatch(t *testing.T) {
	m := baseMatch()
	status := models.MatchStatusFinished
	home := 9

	out := Merge(m, Mutation{MatchID: uuid.New(), Status: &status, HomeScore: &home})

	assert.Equal(t, models.MatchStatusLive, out.Status)
	assert.Equal(t, 1, out.HomeScore)
}

func TestMergeDeleteIsIdempotent(t *testing.T) {
	m := baseMatch()
	mut := Mutation{MatchID: m.ID, DeletedEventIDs: []uuid.UUID{uuid.New()}}

	out := Merge(m, mut)
	assert.Empty(t, out.Events, "deleting an event that is not present is a no-op")
}
