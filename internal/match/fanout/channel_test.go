package fanout

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/pitchside/pitchside/internal/models"
)

func TestChannelPublishReachesSubscribers(t *testing.T) {
	ch := NewChannel()
	matchID := uuid.New()

	var got []Mutation
	unsubscribe := ch.Subscribe(matchID, func(mut Mutation) {
		got = append(got, mut)
	})
	defer unsubscribe()

	status := models.MatchStatusLive
	ch.Publish(Mutation{MatchID: matchID, Status: &status})

	assert.Len(t, got, 1)
	assert.Equal(t, matchID, got[0].MatchID)
	assert.Equal(t, models.MatchStatusLive, *got[0].Status)
}

func TestChannelIsolatesMatches(t *testing.T) {
	ch := NewChannel()
	a, b := uuid.New(), uuid.New()

	var aCount, bCount int
	defer ch.Subscribe(a, func(Mutation) { aCount++ })()
	defer ch.Subscribe(b, func(Mutation) { bCount++ })()

	ch.Publish(Mutation{MatchID: a})
	ch.Publish(Mutation{MatchID: a})
	ch.Publish(Mutation{MatchID: b})

	assert.Equal(t, 2, aCount)
	assert.Equal(t, 1, bCount)
}

func TestChannelUnsubscribeStopsDelivery(t *testing.T) {
	ch := NewChannel()
	matchID := uuid.New()

	var count int
	unsubscribe := ch.Subscribe(matchID, func(Mutation) { count++ })

	ch.Publish(Mutation{MatchID: matchID})
	unsubscribe()
	ch.Publish(Mutation{MatchID: matchID})

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, ch.SubscriberCount(matchID))
}

func TestChannelUnsubscribeIsIdempotent(t *testing.T) {
	ch := NewChannel()
	matchID := uuid.New()

	first := ch.Subscribe(matchID, func(Mutation) {})
	second := ch.Subscribe(matchID, func(Mutation) {})

	first()
	first()
	assert.Equal(t, 1, ch.SubscriberCount(matchID), "double unsubscribe must not remove other subscriptions")

	second()
	assert.Equal(t, 0, ch.SubscriberCount(matchID))
}

func TestChannelPublishWithoutSubscribers(t *testing.T) {
	ch := NewChannel()
	assert.NotPanics(t, func() {
		ch.Publish(Mutation{MatchID: uuid.New()})
	})
}

func TestChannelMultipleSubscribersSameMatch(t *testing.T) {
	ch := NewChannel()
	matchID := uuid.New()

	var first, second int
	defer ch.Subscribe(matchID, func(Mutation) { first++ })()
	defer ch.Subscribe(matchID, func(Mutation) { second++ })()

	assert.Equal(t, 2, ch.SubscriberCount(matchID))

	ch.Publish(Mutation{MatchID: matchID})
	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
}
