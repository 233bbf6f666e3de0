package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "wearlog/internal/platform/errors"
)

// DayKeyLayout is the layout of DayBucket.Key.
const DayKeyLayout = "2006-01-02"

// DayBoundary is the wall-clock time at which one tracking day ends and the
// next begins.
type DayBoundary struct {
	Hour   int
	Minute int
}

// Midnight makes tracking days coincide with calendar days.
var Midnight = DayBoundary{}

func (b DayBoundary) String() string {
	return fmt.Sprintf("%02d:%02d", b.Hour, b.Minute)
}

func (b DayBoundary) valid() bool {
	return b.Hour >= 0 && b.Hour <= 23 && b.Minute >= 0 && b.Minute <= 59
}

// ParseDayBoundary accepts "HH:MM" (or "H:MM") and the legacy packed form
// HHMM ("500" is 05:00). On failure it returns Midnight along with an error
// wrapping ErrInvalidDayBoundary so callers can carry on with calendar days.
func ParseDayBoundary(raw string) (DayBoundary, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Midnight, fmt.Errorf("%w: empty value", apperrors.ErrInvalidDayBoundary)
	}
	var b DayBoundary
	if hh, mm, ok := strings.Cut(s, ":"); ok {
		h, errH := strconv.Atoi(hh)
		m, errM := strconv.Atoi(mm)
		if errH != nil || errM != nil || len(mm) != 2 || len(hh) > 2 {
			return Midnight, fmt.Errorf("%w: %q", apperrors.ErrInvalidDayBoundary, raw)
		}
		b = DayBoundary{Hour: h, Minute: m}
	} else {
		packed, err := strconv.Atoi(s)
		if err != nil || packed < 0 {
			return Midnight, fmt.Errorf("%w: %q", apperrors.ErrInvalidDayBoundary, raw)
		}
		b = DayBoundary{Hour: packed / 100, Minute: packed % 100}
	}
	if !b.valid() {
		return Midnight, fmt.Errorf("%w: %q out of range", apperrors.ErrInvalidDayBoundary, raw)
	}
	return b, nil
}

// Calendar resolves tracking days for a boundary. Label renders the calendar
// date of a day start; nil falls back to the ISO key.
type Calendar struct {
	Boundary DayBoundary
	Label    func(time.Time) string
}

// DayStart returns the most recent boundary crossing at or before t, in t's
// location.
func (c Calendar) DayStart(t time.Time) time.Time {
	start := c.at(t.Year(), t.Month(), t.Day(), t.Location())
	if start.After(t) {
		start = c.at(t.Year(), t.Month(), t.Day()-1, t.Location())
	}
	return start
}

// NextDayStart returns the boundary following dayStart. Calendar arithmetic
// keeps the wall-clock offset stable across DST transitions.
func (c Calendar) NextDayStart(dayStart time.Time) time.Time {
	return c.at(dayStart.Year(), dayStart.Month(), dayStart.Day()+1, dayStart.Location())
}

// DayKey identifies the tracking day containing t.
func (c Calendar) DayKey(t time.Time) string {
	return c.DayStart(t).Format(DayKeyLayout)
}

// DayLabel is the display label of the tracking day containing t.
func (c Calendar) DayLabel(t time.Time) string {
	return c.label(c.DayStart(t))
}

func (c Calendar) label(dayStart time.Time) string {
	if c.Label == nil {
		return dayStart.Format(DayKeyLayout)
	}
	return c.Label(dayStart)
}

func (c Calendar) at(year int, month time.Month, day int, loc *time.Location) time.Time {
	return time.Date(year, month, day, c.Boundary.Hour, c.Boundary.Minute, 0, 0, loc)
}
