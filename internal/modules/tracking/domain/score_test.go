package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wearlog/internal/modules/tracking/domain"
)

func TestScoreEmptyHistory(t *testing.T) {
	t.Parallel()
	s := domain.Scorer{Calendar: fiveAM}
	assert.Equal(t, 100.0, s.ScoreFor(at(5, 12, 0)))
}

func TestScoreIgnoresCurrentDay(t *testing.T) {
	t.Parallel()
	now := at(5, 22, 0)
	buckets := domain.SegmentSessions(fiveAM, []domain.Session{{Start: at(5, 6, 0), End: ptr(at(5, 8, 0))}}, now)
	require.NoError(t, domain.ApplyTotals(fiveAM, buckets, 15, now))
	s := domain.Scorer{Calendar: fiveAM, Buckets: buckets}
	assert.Equal(t, 100.0, s.ScoreFor(now))
}

func TestScoreGraceDeduction(t *testing.T) {
	t.Parallel()
	now := at(10, 12, 0)
	buckets := domain.SegmentSessions(fiveAM, []domain.Session{{Start: at(7, 5, 0), End: ptr(at(7, 20, 0))}}, now)
	require.NoError(t, domain.ApplyTotals(fiveAM, buckets, 15, now))
	require.InDelta(t, 100, buckets[0].Total, 1e-9)

	s := domain.Scorer{Calendar: fiveAM, Buckets: buckets}
	assert.Equal(t, 0.0, s.ScoreFor(now))
}

func TestScoreCapsDailyContributions(t *testing.T) {
	t.Parallel()
	now := at(5, 12, 0)
	sessions := []domain.Session{
		{Start: at(2, 5, 0), End: ptr(at(2, 20, 0))},
		{Start: at(3, 5, 0), End: ptr(at(4, 5, 0))},
		{Start: at(4, 5, 0), End: ptr(at(4, 20, 0))},
	}
	buckets := domain.SegmentSessions(fiveAM, sessions, now)
	require.NoError(t, domain.ApplyTotals(fiveAM, buckets, 15, now))
	s := domain.Scorer{Calendar: fiveAM, Buckets: buckets}
	// three capped days, first segment three days before today: (300-100)/(2*100)
	assert.Equal(t, 100.0, s.ScoreFor(now))
}

func TestScoreIsBounded(t *testing.T) {
	t.Parallel()
	now := at(20, 12, 0)
	buckets := domain.SegmentSessions(fiveAM, []domain.Session{{Start: at(1, 6, 0), End: ptr(at(1, 7, 0))}}, now)
	require.NoError(t, domain.ApplyTotals(fiveAM, buckets, 15, now))
	s := domain.Scorer{Calendar: fiveAM, Buckets: buckets}
	score := s.ScoreFor(now)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 100.0)
}

func TestHistoricalSeries(t *testing.T) {
	t.Parallel()
	now := at(5, 12, 0)
	buckets := domain.SegmentSessions(fiveAM, []domain.Session{
		{Start: at(3, 8, 0), End: ptr(at(3, 14, 0))},
		{Start: at(5, 6, 0), End: ptr(at(5, 9, 0))},
	}, now)
	require.NoError(t, domain.ApplyTotals(fiveAM, buckets, 15, now))
	s := domain.Scorer{Calendar: fiveAM, Buckets: buckets}

	progress := s.HistoricalProgress(now, 4)
	require.Len(t, progress, 4)
	assert.InDeltaSlice(t, []float64{0, 40, 0, 20}, progress, 1e-9)

	// every day sees at least one other recorded day under 100%
	assert.Equal(t, []float64{0, 0, 0, 0}, s.HistoricalScores(now, 4))

	assert.Len(t, s.HistoricalScores(now, 500), domain.MaxHistoryDays)
	assert.Empty(t, s.HistoricalProgress(now, -3))
	assert.Equal(t, 2, domain.DefaultWindow(buckets))
}

func TestScoreCountsDaysAfterTarget(t *testing.T) {
	t.Parallel()
	now := at(5, 12, 0)
	buckets := domain.SegmentSessions(fiveAM, []domain.Session{
		{Start: at(3, 8, 0), End: ptr(at(3, 14, 0))},
		{Start: at(5, 6, 0), End: ptr(at(5, 9, 0))},
	}, now)
	require.NoError(t, domain.ApplyTotals(fiveAM, buckets, 15, now))
	s := domain.Scorer{Calendar: fiveAM, Buckets: buckets}

	// day 3 (40%) and day 5 (20%) both count for day 2: (60-100)/100, floored
	assert.Equal(t, 0.0, s.ScoreFor(at(2, 12, 0)))

	full := domain.SegmentSessions(fiveAM, []domain.Session{
		{Start: at(3, 5, 0), End: ptr(at(3, 20, 0))},
		{Start: at(4, 5, 0), End: ptr(at(4, 20, 0))},
	}, now)
	require.NoError(t, domain.ApplyTotals(fiveAM, full, 15, now))
	s = domain.Scorer{Calendar: fiveAM, Buckets: full}
	// scoring day 3 excludes only day 3: day 4 alone gives (100-100)/100
	assert.Equal(t, 0.0, s.ScoreFor(at(3, 12, 0)))
	// both days count for day 2: (200-100)/100, capped
	assert.Equal(t, 100.0, s.ScoreFor(at(2, 12, 0)))
}
