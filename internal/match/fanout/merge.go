package fanout

import (
	"github.com/pitchside/pitchside/internal/models"
)

// Merge applies a mutation to a match and returns the merged copy. The input
// match is not modified. Merging is shallow and idempotent: set fields
// replace their counterpart wholesale, events upsert by ID, deletions remove
// by ID, and re-applying the same mutation yields an identical result.
// A mutation carrying a different match ID is ignored.
func Merge(m *models.Match, mut Mutation) *models.Match {
	out := *m
	if mut.MatchID != m.ID {
		out.Events = append([]models.MatchEvent(nil), m.Events...)
		return &out
	}
	out.Events = append([]models.MatchEvent(nil), m.Events...)

	if mut.Status != nil {
		out.Status = *mut.Status
	}
	if mut.Anchor != nil {
		out.Anchor = *mut.Anchor
	}
	if mut.HomeScore != nil {
		out.HomeScore = *mut.HomeScore
	}
	if mut.AwayScore != nil {
		out.AwayScore = *mut.AwayScore
	}
	if mut.Lineups != nil {
		l := *mut.Lineups
		out.Lineups = &l
	}

	for _, ev := range mut.Events {
		replaced := false
		for i := range out.Events {
			if out.Events[i].ID == ev.ID {
				out.Events[i] = ev
				replaced = true
				break
			}
		}
		if !replaced {
			out.Events = append(out.Events, ev)
		}
	}

	if len(mut.DeletedEventIDs) > 0 {
		kept := out.Events[:0]
		for _, ev := range out.Events {
			deleted := false
			for _, id := range mut.DeletedEventIDs {
				if ev.ID == id {
					deleted = true
					break
				}
			}
			if !deleted {
				kept = append(kept, ev)
			}
		}
		out.Events = kept
	}

	return &out
}
