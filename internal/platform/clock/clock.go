package clock

import "time"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reads local wall-clock time. Tracking days are anchored on
// local time, so the location must not be normalized away.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().Truncate(time.Second)
}

// Fixed always returns the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
