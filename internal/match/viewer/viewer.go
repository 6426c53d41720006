// Package viewer maintains a live, merged view of a single match for one
// consumer: screen, websocket session, anything that wants to render a match
// without re-fetching it on every change.
package viewer

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/pitchside/pitchside/internal/match/clock"
	"github.com/pitchside/pitchside/internal/match/fanout"
	"github.com/pitchside/pitchside/internal/models"
)

// SnapshotFetcher loads the authoritative state of a match.
type SnapshotFetcher interface {
	GetMatch(ctx context.Context, id uuid.UUID) (*models.Match, error)
}

// View is what a consumer renders: the merged match plus the derived clock
// face for the instant it was built.
type View struct {
	Match     *models.Match
	Minute    clock.Minute
	Countdown *clock.Countdown
}

// UpdateFunc receives a fresh view whenever the underlying match or its
// displayed clock changes. It runs while the viewer's lock is held, which is
// what guarantees nothing is delivered after Close returns; implementations
// must hand the view off and return, never call back into the Viewer.
type UpdateFunc func(v View)

// Viewer holds a cached projection of one match. It merges incremental
// mutations from the fanout channel, recomputes the displayed minute on the
// shared ticker, and re-fetches the full snapshot on a fixed interval as a
// backstop against missed updates. Close releases the subscription, the tick
// registration and the refresh loop.
type Viewer struct {
	matchID  uuid.UUID
	fetcher  SnapshotFetcher
	clk      clockwork.Clock
	onUpdate UpdateFunc

	mu          sync.Mutex
	current     *models.Match
	lastMinute  clock.Minute
	unsubscribe fanout.UnsubscribeFunc
	untrack     clock.UntrackFunc
	stop        chan struct{}
	closed      bool
}

const defaultRefreshInterval = 60 * time.Second

// Open fetches the initial snapshot and wires the viewer into the channel
// and ticker. The initial view is delivered before Open returns.
func Open(ctx context.Context, matchID uuid.UUID, fetcher SnapshotFetcher, ch *fanout.Channel, ticker *clock.Ticker, clk clockwork.Clock, onUpdate UpdateFunc) (*Viewer, error) {
	m, err := fetcher.GetMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		matchID:  matchID,
		fetcher:  fetcher,
		clk:      clk,
		onUpdate: onUpdate,
		current:  m,
		stop:     make(chan struct{}),
	}

	v.unsubscribe = ch.Subscribe(matchID, v.handleMutation)
	v.untrack = ticker.Track(matchID, v.handleTick)
	go v.refreshLoop()

	v.mu.Lock()
	v.emitLocked(clk.Now())
	v.mu.Unlock()
	return v, nil
}

// Current returns the viewer's cached match.
func (v *Viewer) Current() *models.Match {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.current
}

// Close tears the viewer down. Safe to call more than once; after Close
// returns, no further updates are delivered.
func (v *Viewer) Close() {
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	close(v.stop)
	v.mu.Unlock()

	v.unsubscribe()
	v.untrack()
}

func (v *Viewer) handleMutation(mut fanout.Mutation) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.current = fanout.Merge(v.current, mut)
	v.emitLocked(v.clk.Now())
}

func (v *Viewer) handleTick(now time.Time) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}

	// A countdown changes every second; a match minute only once a minute.
	if v.current.Status == models.MatchStatusScheduled {
		v.emitLocked(now)
		return
	}
	minute := clock.DisplayMinute(v.current.Status, v.current.Anchor, v.current.Config, now)
	if minute != v.lastMinute {
		v.emitLocked(now)
	}
}

func (v *Viewer) refreshLoop() {
	ticker := v.clk.NewTicker(defaultRefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-v.stop:
			return
		case <-ticker.Chan():
			v.refresh()
		}
	}
}

// refresh replaces the cached projection with a fresh snapshot. Any update
// lost between mutations is reconciled here.
func (v *Viewer) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	m, err := v.fetcher.GetMatch(ctx, v.matchID)
	if err != nil {
		log.Warn().Err(err).Str("matchId", v.matchID.String()).Msg("Viewer refresh failed, keeping cached state")
		return
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.current = m
	v.emitLocked(v.clk.Now())
}

func (v *Viewer) emitLocked(now time.Time) {
	view := View{
		Match:  v.current,
		Minute: clock.DisplayMinute(v.current.Status, v.current.Anchor, v.current.Config, now),
	}
	v.lastMinute = view.Minute
	if v.current.Status == models.MatchStatusScheduled && v.current.KickoffAt != nil {
		cd := clock.CountdownTo(*v.current.KickoffAt, now)
		view.Countdown = &cd
	}
	v.onUpdate(view)
}
