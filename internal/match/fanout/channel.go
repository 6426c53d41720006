package fanout

import (
	"sync"

	"github.com/google/uuid"
)

// Handler receives mutations for a subscribed match.
type Handler func(mut Mutation)

// UnsubscribeFunc removes a subscription. It is safe to call more than once.
type UnsubscribeFunc func()

type subscription struct {
	handler Handler
}

// Channel is the in-process update registry, keyed by match ID. Publish is
// synchronous and holds the registry read lock while invoking handlers, so
// once Unsubscribe returns the handler is guaranteed not to run again.
// Handlers must not call back into the channel.
type Channel struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[*subscription]struct{}
}

// NewChannel creates an empty update channel.
func NewChannel() *Channel {
	return &Channel{subs: make(map[uuid.UUID]map[*subscription]struct{})}
}

// Subscribe registers a handler for a match's mutations and returns the
// function that removes it.
func (c *Channel) Subscribe(matchID uuid.UUID, h Handler) UnsubscribeFunc {
	sub := &subscription{handler: h}

	c.mu.Lock()
	set, ok := c.subs[matchID]
	if !ok {
		set = make(map[*subscription]struct{})
		c.subs[matchID] = set
	}
	set[sub] = struct{}{}
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			set, ok := c.subs[matchID]
			if !ok {
				return
			}
			delete(set, sub)
			if len(set) == 0 {
				delete(c.subs, matchID)
			}
		})
	}
}

// Publish delivers a mutation to every subscriber of its match. Delivery is
// synchronous: Publish returns only after every handler has run.
func (c *Channel) Publish(mut Mutation) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for sub := range c.subs[mut.MatchID] {
		sub.handler(mut)
	}
}

// SubscriberCount reports how many handlers are subscribed to a match.
func (c *Channel) SubscriberCount(matchID uuid.UUID) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.subs[matchID])
}
