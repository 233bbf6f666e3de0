package domain

import (
	"fmt"
	"math"
	"time"
)

// Projection is today's standing against the goal.
type Projection struct {
	WornSeconds float64
	Progress    float64
	// Remaining is positive while the goal is not reached.
	Remaining time.Duration
	FinishAt  time.Time
	Overrun   time.Duration
	Reached   bool
}

// Project derives the display values from worn seconds and the goal.
func Project(wornSeconds, goalHours float64, now time.Time) (Projection, error) {
	if err := CheckGoal(goalHours); err != nil {
		return Projection{}, err
	}
	goalSeconds := goalHours * 3600
	remaining := goalSeconds - wornSeconds
	p := Projection{
		WornSeconds: wornSeconds,
		Progress:    wornSeconds / goalSeconds * 100,
	}
	if remaining > 0 {
		p.Remaining = time.Duration(remaining * float64(time.Second))
		p.FinishAt = now.Add(p.Remaining)
		return p, nil
	}
	p.Reached = true
	p.Overrun = time.Duration(-remaining * float64(time.Second))
	return p, nil
}

// FormatClock renders seconds as H:MM:SS; hours are not capped at 24.
func FormatClock(seconds float64) string {
	total := int64(math.Floor(math.Max(seconds, 0)))
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// FormatHM renders a duration as HH:MM, truncating seconds.
func FormatHM(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	minutes := int64(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
