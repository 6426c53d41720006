package clock

import (
	"fmt"
	"time"
)

// Countdown is the pre-kickoff display for a scheduled match.
type Countdown struct {
	Remaining time.Duration `json:"remaining"`
	Display   string        `json:"display"`
}

// CountdownTo computes the countdown shown before kickoff. Granularity
// coarsens with distance: days out shows days, inside a day it shows hours
// and minutes, inside an hour minutes and seconds. Once kickoff has passed
// the countdown is zero and the display hands over to the match clock.
func CountdownTo(kickoff, now time.Time) Countdown {
	remaining := kickoff.Sub(now)
	if remaining <= 0 {
		return Countdown{Display: "0:00"}
	}

	var display string
	switch {
	case remaining >= 24*time.Hour:
		days := int(remaining / (24 * time.Hour))
		display = fmt.Sprintf("%dd", days)
	case remaining >= time.Hour:
		h := int(remaining / time.Hour)
		m := int(remaining%time.Hour) / int(time.Minute)
		display = fmt.Sprintf("%dh %02dm", h, m)
	default:
		m := int(remaining / time.Minute)
		s := int(remaining%time.Minute) / int(time.Second)
		display = fmt.Sprintf("%d:%02d", m, s)
	}
	return Countdown{Remaining: remaining, Display: display}
}
