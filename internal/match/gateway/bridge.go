package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/pitchside/pitchside/internal/match/events"
	"github.com/pitchside/pitchside/internal/match/fanout"
)

// PayloadToMutation converts a bus event payload into the partial-match
// mutation the fanout channel distributes. Unknown event types are an error
// so a schema drift surfaces in the logs instead of silently dropping fields.
func PayloadToMutation(matchID uuid.UUID, eventType string, payload json.RawMessage) (fanout.Mutation, error) {
	mut := fanout.Mutation{MatchID: matchID}

	switch eventType {
	case events.TypePhaseChanged:
		var p events.PhaseChangedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return mut, fmt.Errorf("unmarshal PhaseChanged payload: %w", err)
		}
		status := p.ToStatus
		anchor := p.Anchor
		mut.Status = &status
		mut.Anchor = &anchor
		if p.Event != nil {
			mut.Events = append(mut.Events, *p.Event)
		}

	case events.TypeScoreUpdated:
		var p events.ScoreUpdatedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return mut, fmt.Errorf("unmarshal ScoreUpdated payload: %w", err)
		}
		home, away := p.HomeScore, p.AwayScore
		mut.HomeScore = &home
		mut.AwayScore = &away

	case events.TypeStoppageSet:
		var p events.StoppageSetPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return mut, fmt.Errorf("unmarshal StoppageSet payload: %w", err)
		}
		anchor := p.Anchor
		mut.Anchor = &anchor

	case events.TypeEventRecorded:
		var p events.EventRecordedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return mut, fmt.Errorf("unmarshal EventRecorded payload: %w", err)
		}
		mut.Events = append(mut.Events, p.Event)

	case events.TypeEventDeleted:
		var p events.EventDeletedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return mut, fmt.Errorf("unmarshal EventDeleted payload: %w", err)
		}
		id, err := uuid.Parse(p.EventID)
		if err != nil {
			return mut, fmt.Errorf("parse deleted event ID: %w", err)
		}
		mut.DeletedEventIDs = append(mut.DeletedEventIDs, id)

	case events.TypeLineupSubmitted:
		var p events.LineupSubmittedPayload
		if err := json.Unmarshal(payload, &p); err != nil {
			return mut, fmt.Errorf("unmarshal LineupSubmitted payload: %w", err)
		}
		lineups := p.Lineups
		mut.Lineups = &lineups

	default:
		return mut, fmt.Errorf("unknown event type: %s", eventType)
	}

	return mut, nil
}
