package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pitchside/pitchside/internal/models"
)

var kickoff = time.Date(2026, 9, 12, 15, 0, 0, 0, time.UTC)

func runningAnchor(ref time.Time, minute int) models.Anchor {
	return models.Anchor{ReferenceWallClock: ref, ReferenceMatchMinute: minute}
}

func frozenAnchor(minute int) models.Anchor {
	return models.Anchor{ReferenceMatchMinute: minute, Frozen: true}
}

func TestDisplayMinuteFirstHalf(t *testing.T) {
	cfg := models.DefaultMatchConfig()
	anchor := runningAnchor(kickoff, 0)

	cases := []struct {
		name string
		now  time.Time
		want Minute
	}{
		{"at kickoff", kickoff, Minute{Base: 0}},
		{"just after a minute", kickoff.Add(65 * time.Second), Minute{Base: 1}},
		{"mid half", kickoff.Add(23 * time.Minute), Minute{Base: 23}},
		{"at the boundary", kickoff.Add(45 * time.Minute), Minute{Base: 45}},
		{"into stoppage", kickoff.Add(47 * time.Minute), Minute{Base: 45, Added: 2}},
		{"deep stoppage", kickoff.Add(51 * time.Minute), Minute{Base: 45, Added: 6}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := DisplayMinute(models.MatchStatusLive, anchor, cfg, c.now)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestDisplayMinuteSecondHalf(t *testing.T) {
	cfg := models.DefaultMatchConfig()
	restart := kickoff.Add(62 * time.Minute)
	anchor := runningAnchor(restart, 45)

	got := DisplayMinute(models.MatchStatusLive, anchor, cfg, restart.Add(10*time.Minute))
	assert.Equal(t, Minute{Base: 55}, got)

	got = DisplayMinute(models.MatchStatusLive, anchor, cfg, restart.Add(48*time.Minute))
	assert.Equal(t, Minute{Base: 90, Added: 3}, got)
}

func TestDisplayMinuteFrozen(t *testing.T) {
	cfg := models.DefaultMatchConfig()

	got := DisplayMinute(models.MatchStatusHalftime, frozenAnchor(45), cfg, kickoff.Add(3*time.Hour))
	assert.Equal(t, Minute{Base: 45}, got, "halftime pins the clock regardless of wall time")

	got = DisplayMinute(models.MatchStatusFinished, frozenAnchor(90), cfg, kickoff.Add(24*time.Hour))
	assert.Equal(t, Minute{Base: 90}, got)

	got = DisplayMinute(models.MatchStatusPenalties, frozenAnchor(120), cfg, kickoff.Add(3*time.Hour))
	assert.Equal(t, Minute{Base: 120}, got)
}

func TestDisplayMinuteExtraTime(t *testing.T) {
	cfg := models.DefaultMatchConfig()
	restart := kickoff.Add(2 * time.Hour)

	first := runningAnchor(restart, 90)
	got := DisplayMinute(models.MatchStatusExtraTime, first, cfg, restart.Add(12*time.Minute))
	assert.Equal(t, Minute{Base: 102}, got)

	got = DisplayMinute(models.MatchStatusExtraTime, first, cfg, restart.Add(17*time.Minute))
	assert.Equal(t, Minute{Base: 105, Added: 2}, got)

	second := runningAnchor(restart, 105)
	got = DisplayMinute(models.MatchStatusExtraTime, second, cfg, restart.Add(16*time.Minute))
	assert.Equal(t, Minute{Base: 120, Added: 1}, got)
}

func TestDisplayMinuteClampsBackwardClock(t *testing.T) {
	cfg := models.DefaultMatchConfig()
	anchor := runningAnchor(kickoff, 45)

	got := DisplayMinute(models.MatchStatusLive, anchor, cfg, kickoff.Add(-5*time.Minute))
	assert.Equal(t, Minute{Base: 45}, got, "a wall clock behind the anchor must not read below the reference minute")
}

func TestDisplayMinuteScheduled(t *testing.T) {
	cfg := models.DefaultMatchConfig()
	anchor := frozenAnchor(0)

	got := DisplayMinute(models.MatchStatusScheduled, anchor, cfg, kickoff)
	assert.Equal(t, Minute{Base: 0}, got)
}

func TestDisplayMinuteCustomConfig(t *testing.T) {
	cfg := models.MatchConfig{HalfMinutes: 25, ExtraHalfMinutes: 5}
	anchor := runningAnchor(kickoff, 0)

	got := DisplayMinute(models.MatchStatusLive, anchor, cfg, kickoff.Add(28*time.Minute))
	assert.Equal(t, Minute{Base: 25, Added: 3}, got)
}

func TestMinuteString(t *testing.T) {
	assert.Equal(t, "55'", Minute{Base: 55}.String())
	assert.Equal(t, "45+2'", Minute{Base: 45, Added: 2}.String())
	assert.Equal(t, "0'", Minute{}.String())
}

func TestCountdownTo(t *testing.T) {
	cases := []struct {
		name    string
		lead    time.Duration
		display string
	}{
		{"days out", 3*24*time.Hour + 5*time.Hour, "3d"},
		{"hours out", 2*time.Hour + 7*time.Minute, "2h 07m"},
		{"minutes out", 12*time.Minute + 4*time.Second, "12:04"},
		{"seconds out", 42 * time.Second, "0:42"},
		{"kickoff passed", -time.Minute, "0:00"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := CountdownTo(kickoff, kickoff.Add(-c.lead))
			assert.Equal(t, c.display, got.Display)
		})
	}
}
