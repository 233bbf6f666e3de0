package dto

import "time"

type SessionOutput struct {
	ID        string
	StartedAt time.Time
	EndedAt   *time.Time
}

func (s SessionOutput) Open() bool {
	return s.EndedAt == nil
}

// Duration measures the session, using now while it is open.
func (s SessionOutput) Duration(now time.Time) time.Duration {
	end := now
	if s.EndedAt != nil {
		end = *s.EndedAt
	}
	if end.Before(s.StartedAt) {
		return 0
	}
	return end.Sub(s.StartedAt)
}

type ManualTimeInput struct {
	// At is a wall-clock "HH:MM" resolved to its latest occurrence.
	At string
}
