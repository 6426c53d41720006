package gateway

import (
	"encoding/json"
	"time"

	"github.com/pitchside/pitchside/internal/match/events"
)

// MatchEvent is the frame pushed to attached screens. Data carries the
// event-specific payload verbatim from the bus.
type MatchEvent struct {
	ID        string          `json:"id"`
	MatchID   string          `json:"match_id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// EventType identifies the kind of match event on the wire.
type EventType string

const (
	EventTypePhaseChanged    EventType = EventType(events.TypePhaseChanged)
	EventTypeScoreUpdated    EventType = EventType(events.TypeScoreUpdated)
	EventTypeStoppageSet     EventType = EventType(events.TypeStoppageSet)
	EventTypeEventRecorded   EventType = EventType(events.TypeEventRecorded)
	EventTypeEventDeleted    EventType = EventType(events.TypeEventDeleted)
	EventTypeLineupSubmitted EventType = EventType(events.TypeLineupSubmitted)
)

// eventTypeFromName maps a bus event type name onto the gateway wire type.
func eventTypeFromName(name string) (EventType, bool) {
	switch name {
	case events.TypePhaseChanged, events.TypeScoreUpdated, events.TypeStoppageSet,
		events.TypeEventRecorded, events.TypeEventDeleted, events.TypeLineupSubmitted:
		return EventType(name), true
	}
	return "", false
}
