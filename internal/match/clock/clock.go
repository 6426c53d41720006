// Package clock derives the displayed match minute from a persisted anchor
// and the current wall clock. Derivation is pure: no state accumulates
// between calls, so a missed tick or a reconnect costs nothing. The anchor is
// the only input that changes the result besides time itself.
package clock

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pitchside/pitchside/internal/models"
)

// Minute is a displayed match minute. Added is nonzero once the segment's
// boundary has passed, rendering in the "45+2'" form.
type Minute struct {
	Base  int `json:"base"`
	Added int `json:"added"`
}

// String renders the minute the way a broadcast clock does.
func (m Minute) String() string {
	if m.Added > 0 {
		return fmt.Sprintf("%d+%d'", m.Base, m.Added)
	}
	return fmt.Sprintf("%d'", m.Base)
}

// DisplayMinute computes the minute to show for a match at the given wall
// clock time.
//
// Frozen anchors (halftime, penalties, finished) pin the display to the
// anchor's reference minute. Running anchors advance with wall time from the
// reference point and spill into added time once the segment's boundary
// minute is reached, so a first half never reads 47' but 45+2'.
//
// A wall clock behind the anchor is clamped to the reference minute rather
// than shown as a negative or jumping backwards.
func DisplayMinute(status models.MatchStatus, anchor models.Anchor, cfg models.MatchConfig, now time.Time) Minute {
	if anchor.Frozen || !status.Running() {
		return capMinute(anchor.ReferenceMatchMinute, segmentBoundary(status, anchor, cfg))
	}

	elapsed := now.Sub(anchor.ReferenceWallClock)
	if elapsed < 0 {
		log.Debug().
			Time("now", now).
			Time("anchor", anchor.ReferenceWallClock).
			Msg("Wall clock behind anchor, clamping")
		elapsed = 0
	}

	raw := anchor.ReferenceMatchMinute + int(elapsed/time.Minute)
	return capMinute(raw, segmentBoundary(status, anchor, cfg))
}

func capMinute(raw, boundary int) Minute {
	if boundary > 0 && raw > boundary {
		return Minute{Base: boundary, Added: raw - boundary}
	}
	return Minute{Base: raw}
}

// segmentBoundary is the minute at which the current segment's clock stops
// counting normally and added time begins. Zero means no boundary applies.
func segmentBoundary(status models.MatchStatus, anchor models.Anchor, cfg models.MatchConfig) int {
	switch status {
	case models.MatchStatusLive:
		if anchor.ReferenceMatchMinute < cfg.HalfMinutes {
			return cfg.HalfMinutes
		}
		return 2 * cfg.HalfMinutes
	case models.MatchStatusExtraTime:
		if anchor.ReferenceMatchMinute < 2*cfg.HalfMinutes+cfg.ExtraHalfMinutes {
			return 2*cfg.HalfMinutes + cfg.ExtraHalfMinutes
		}
		return 2*cfg.HalfMinutes + 2*cfg.ExtraHalfMinutes
	}
	return 0
}
