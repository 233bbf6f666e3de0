package domain

import (
	"fmt"
	"sort"
	"time"

	apperrors "wearlog/internal/platform/errors"
)

// Session is one wearing interval. A nil End means the session is open.
type Session struct {
	Start time.Time
	End   *time.Time
}

func (s Session) Open() bool {
	return s.End == nil
}

// Segment is the part of one session that falls inside one tracking day.
// A nil End marks the still-running tail of the open session.
type Segment struct {
	Start time.Time
	End   *time.Time
}

// Duration measures the segment, using now for an open tail.
func (s Segment) Duration(now time.Time) time.Duration {
	end := now
	if s.End != nil {
		end = *s.End
	}
	if end.Before(s.Start) {
		return 0
	}
	return end.Sub(s.Start)
}

// DayBucket groups the segments of one tracking day.
type DayBucket struct {
	Key          string
	Date         string
	DayStart     time.Time
	Segments     []Segment
	Total        float64
	IsPartialDay bool
}

// ValidateSessions reports closed sessions ending before they start. They
// are never repaired: Segment skips them.
func ValidateSessions(sessions []Session) []error {
	var errs []error
	for i, s := range sessions {
		if s.End != nil && s.End.Before(s.Start) {
			errs = append(errs, fmt.Errorf("%w: session %d ends at %s before its start %s",
				apperrors.ErrMalformedSession, i, s.End.Format(time.RFC3339), s.Start.Format(time.RFC3339)))
		}
	}
	return errs
}

// SegmentSessions splits sessions at tracking-day boundaries and groups the chunks
// into day buckets, most recent day first. Totals are left at zero; see
// ApplyTotals.
func SegmentSessions(cal Calendar, sessions []Session, now time.Time) []DayBucket {
	byKey := map[string]*DayBucket{}
	var order []*DayBucket
	todayKey := cal.DayKey(now)

	for _, s := range sessions {
		last := now
		if s.End != nil {
			last = *s.End
		}
		if last.Before(s.Start) {
			if !s.Open() {
				continue
			}
			// open session stamped in the future: keep it visible, empty
			last = s.Start
		}

		cur := s.Start
		for first := true; first || cur.Before(last); first = false {
			dayStart := cal.DayStart(cur)
			next := cal.NextDayStart(dayStart)
			end := minTime(last, next)
			key := dayStart.Format(DayKeyLayout)

			seg := Segment{Start: maxTime(cur, dayStart)}
			tail := !next.Before(last)
			if !(tail && s.Open() && key == todayKey) {
				e := end
				seg.End = &e
			}

			bucket, ok := byKey[key]
			if !ok {
				bucket = &DayBucket{Key: key, Date: cal.label(dayStart), DayStart: dayStart}
				byKey[key] = bucket
				order = append(order, bucket)
			}
			bucket.Segments = append(bucket.Segments, seg)
			if !first {
				bucket.IsPartialDay = true
			}
			cur = next
		}
	}

	out := make([]DayBucket, 0, len(order))
	for _, b := range order {
		sort.SliceStable(b.Segments, func(i, j int) bool {
			return b.Segments[i].Start.Before(b.Segments[j].Start)
		})
		out = append(out, *b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Segments[0].Start.After(out[j].Segments[0].Start)
	})
	return out
}

// FindBucket returns the bucket with the given key.
func FindBucket(buckets []DayBucket, key string) (DayBucket, bool) {
	for _, b := range buckets {
		if b.Key == key {
			return b, true
		}
	}
	return DayBucket{}, false
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
