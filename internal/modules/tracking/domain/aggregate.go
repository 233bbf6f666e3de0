package domain

import (
	"fmt"
	"math"
	"time"

	apperrors "wearlog/internal/platform/errors"
)

// CheckGoal rejects goals that would make percentages non-finite.
func CheckGoal(goalHours float64) error {
	if goalHours <= 0 || math.IsNaN(goalHours) || math.IsInf(goalHours, 0) {
		return fmt.Errorf("%w: goal must be a positive number of hours, got %v", apperrors.ErrGoalNotSet, goalHours)
	}
	return nil
}

// Aggregate returns the worn time of b as a percentage of goalHours. Each
// segment is clipped to the bucket's day; an open segment runs until now.
func Aggregate(cal Calendar, b DayBucket, goalHours float64, now time.Time) (float64, error) {
	if err := CheckGoal(goalHours); err != nil {
		return 0, err
	}
	next := cal.NextDayStart(b.DayStart)
	var total float64
	for _, seg := range b.Segments {
		start := maxTime(seg.Start, b.DayStart)
		end := now
		if seg.End != nil {
			end = *seg.End
		}
		end = minTime(end, next)
		if !end.After(start) {
			continue
		}
		total += end.Sub(start).Hours() / goalHours * 100
	}
	return total, nil
}

// ApplyTotals recomputes Total on every bucket.
func ApplyTotals(cal Calendar, buckets []DayBucket, goalHours float64, now time.Time) error {
	for i := range buckets {
		total, err := Aggregate(cal, buckets[i], goalHours, now)
		if err != nil {
			return err
		}
		buckets[i].Total = total
	}
	return nil
}

// WornTodaySeconds sums the current tracking day. The open tail only counts
// while wearing and is measured from openStart, the start of the open
// session, even when that session began before today's boundary.
func WornTodaySeconds(cal Calendar, buckets []DayBucket, isWearing bool, openStart *time.Time, now time.Time) float64 {
	today, ok := FindBucket(buckets, cal.DayKey(now))
	if !ok {
		return 0
	}
	var total float64
	for _, seg := range today.Segments {
		if seg.End != nil {
			total += seg.End.Sub(seg.Start).Seconds()
			continue
		}
		if !isWearing || openStart == nil {
			continue
		}
		if now.After(*openStart) {
			total += now.Sub(*openStart).Seconds()
		}
	}
	return total
}
