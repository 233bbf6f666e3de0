package domain

import (
	"math"
	"time"
)

// MaxHistoryDays caps the historical series.
const MaxHistoryDays = 90

// Scorer derives compliance scores from a bucket history.
type Scorer struct {
	Calendar Calendar
	Buckets  []DayBucket
}

// ScoreFor scores every recorded day except the one containing target,
// which is incomplete and never counts. firstSegmentStart is taken from the
// earliest remaining bucket, so days after target still contribute.
//
// The formula subtracts one full day (the -100 term) before normalizing; it
// is kept as observed. Scores below 0 are floored so the result stays a
// percentage.
func (s Scorer) ScoreFor(target time.Time) float64 {
	targetKey := s.Calendar.DayKey(target)

	var (
		counted    int
		totalScore float64
		first      time.Time
	)
	for _, b := range s.Buckets {
		if b.Key == targetKey || len(b.Segments) == 0 {
			continue
		}
		counted++
		totalScore += math.Min(b.Total, 100)
		if start := b.Segments[0].Start; first.IsZero() || start.Before(first) {
			first = start
		}
	}
	if counted == 0 {
		return 100
	}

	days := math.Ceil(s.Calendar.DayStart(target).Sub(first).Hours()/24) - 1
	totalDays := math.Max(1, days)
	score := math.Min(((totalScore-100)/(totalDays*100))*100, 100)
	return math.Max(score, 0)
}

// HistoricalScores returns ScoreFor for the n days ending at today, oldest
// first. n is clamped to [0, MaxHistoryDays].
func (s Scorer) HistoricalScores(today time.Time, n int) []float64 {
	n = clampWindow(n)
	out := make([]float64, 0, n)
	for i := n - 1; i >= 0; i-- {
		out = append(out, s.ScoreFor(today.AddDate(0, 0, -i)))
	}
	return out
}

// HistoricalProgress returns the raw daily totals for the same window as
// HistoricalScores, 0 for days without a bucket.
func (s Scorer) HistoricalProgress(today time.Time, n int) []float64 {
	n = clampWindow(n)
	out := make([]float64, 0, n)
	for i := n - 1; i >= 0; i-- {
		b, ok := FindBucket(s.Buckets, s.Calendar.DayKey(today.AddDate(0, 0, -i)))
		if !ok {
			out = append(out, 0)
			continue
		}
		out = append(out, b.Total)
	}
	return out
}

// DefaultWindow sizes the history to the number of recorded days.
func DefaultWindow(buckets []DayBucket) int {
	return clampWindow(len(buckets))
}

func clampWindow(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxHistoryDays {
		return MaxHistoryDays
	}
	return n
}
