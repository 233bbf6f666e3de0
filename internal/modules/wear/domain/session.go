package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "wearlog/internal/platform/errors"
)

// WearingSession is one persisted wearing interval. A nil End means the
// device is still being worn.
type WearingSession struct {
	ID    string
	Start time.Time
	End   *time.Time
}

func (s WearingSession) Open() bool {
	return s.End == nil
}

func (s WearingSession) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: session id is required", apperrors.ErrInvalidInput)
	}
	if s.Start.IsZero() {
		return fmt.Errorf("%w: session %s has no start", apperrors.ErrInvalidInput, s.ID)
	}
	if s.End != nil && s.End.Before(s.Start) {
		return fmt.Errorf("%w: session %s ends before it starts", apperrors.ErrMalformedSession, s.ID)
	}
	return nil
}

// TimeOfDay is a manually entered wall-clock time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// TimeOfDayError reports a rejected manual time entry.
type TimeOfDayError struct {
	Input  string
	Reason string
}

func (e *TimeOfDayError) Error() string {
	return fmt.Sprintf("invalid time %q: %s", e.Input, e.Reason)
}

func (e *TimeOfDayError) Unwrap() error {
	return apperrors.ErrInvalidInput
}

// ParseTimeOfDay accepts "HH:MM" or "H:MM" with hours in [0,23] and
// minutes in [0,59].
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	s := strings.TrimSpace(raw)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return TimeOfDay{}, &TimeOfDayError{Input: raw, Reason: "expected HH:MM"}
	}
	if len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return TimeOfDay{}, &TimeOfDayError{Input: raw, Reason: "expected HH:MM"}
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return TimeOfDay{}, &TimeOfDayError{Input: raw, Reason: "hour must be between 0 and 23"}
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, &TimeOfDayError{Input: raw, Reason: "minute must be between 0 and 59"}
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// Resolve returns the most recent occurrence of t at or before now.
func (t TimeOfDay) Resolve(now time.Time) time.Time {
	at := time.Date(now.Year(), now.Month(), now.Day(), t.Hour, t.Minute, 0, 0, now.Location())
	if at.After(now) {
		at = time.Date(now.Year(), now.Month(), now.Day()-1, t.Hour, t.Minute, 0, 0, now.Location())
	}
	return at
}
