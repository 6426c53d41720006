package clock

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

// TickFunc is invoked once per tick with the current wall clock time.
type TickFunc func(now time.Time)

// UntrackFunc removes a tick registration. It is safe to call more than once.
type UntrackFunc func()

type tickEntry struct {
	fn TickFunc
}

// Ticker drives minute recomputation for every tracked match off a single
// shared one second tick instead of one timer per match. A match can be
// tracked by any number of screens at once; each Track call registers its own
// callback and releases only that callback. The loop runs only while at least
// one registration exists anywhere.
type Ticker struct {
	clock    clockwork.Clock
	interval time.Duration

	mu      sync.Mutex
	tracked map[uuid.UUID]map[*tickEntry]struct{}
	stop    chan struct{}
	running bool
}

// NewTicker creates a ticker on the given clock. The clock is injectable so
// tests can advance time without waiting.
func NewTicker(clk clockwork.Clock) *Ticker {
	return &Ticker{
		clock:    clk,
		interval: time.Second,
		tracked:  make(map[uuid.UUID]map[*tickEntry]struct{}),
	}
}

// Track registers fn to run on every tick for the given match and returns the
// function that releases this registration. Other registrations for the same
// match are unaffected.
func (t *Ticker) Track(matchID uuid.UUID, fn TickFunc) UntrackFunc {
	entry := &tickEntry{fn: fn}

	t.mu.Lock()
	set, ok := t.tracked[matchID]
	if !ok {
		set = make(map[*tickEntry]struct{})
		t.tracked[matchID] = set
	}
	set[entry] = struct{}{}
	if !t.running {
		t.running = true
		t.stop = make(chan struct{})
		go t.run(t.stop)
	}
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()

			set, ok := t.tracked[matchID]
			if !ok {
				return
			}
			delete(set, entry)
			if len(set) == 0 {
				delete(t.tracked, matchID)
			}
			if len(t.tracked) == 0 && t.running {
				close(t.stop)
				t.running = false
			}
		})
	}
}

// TrackedCount reports how many callbacks are registered for a match.
func (t *Ticker) TrackedCount(matchID uuid.UUID) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.tracked[matchID])
}

func (t *Ticker) run(stop chan struct{}) {
	ticker := t.clock.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case now := <-ticker.Chan():
			t.mu.Lock()
			fns := make([]TickFunc, 0, len(t.tracked))
			for _, set := range t.tracked {
				for entry := range set {
					fns = append(fns, entry.fn)
				}
			}
			t.mu.Unlock()

			for _, fn := range fns {
				fn(now)
			}
		}
	}
}
