package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wearlog/internal/modules/tracking/domain"
	apperrors "wearlog/internal/platform/errors"
)

func at(day, hour, minute int) time.Time {
	return time.Date(2024, 1, day, hour, minute, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

func TestParseDayBoundary(t *testing.T) {
	t.Parallel()
	cases := []struct {
		raw     string
		want    domain.DayBoundary
		wantErr bool
	}{
		{"05:00", domain.DayBoundary{Hour: 5}, false},
		{"5:30", domain.DayBoundary{Hour: 5, Minute: 30}, false},
		{" 23:59 ", domain.DayBoundary{Hour: 23, Minute: 59}, false},
		{"00:00", domain.Midnight, false},
		{"500", domain.DayBoundary{Hour: 5}, false},
		{"1730", domain.DayBoundary{Hour: 17, Minute: 30}, false},
		{"0", domain.Midnight, false},
		{"", domain.Midnight, true},
		{"24:00", domain.Midnight, true},
		{"05:60", domain.Midnight, true},
		{"5:5", domain.Midnight, true},
		{"abc", domain.Midnight, true},
		{"1275", domain.Midnight, true},
		{"-100", domain.Midnight, true},
	}
	for _, tc := range cases {
		got, err := domain.ParseDayBoundary(tc.raw)
		assert.Equal(t, tc.want, got, "raw=%q", tc.raw)
		if tc.wantErr {
			require.Error(t, err, "raw=%q", tc.raw)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidDayBoundary))
		} else {
			require.NoError(t, err, "raw=%q", tc.raw)
		}
	}
}

func TestDayStart(t *testing.T) {
	t.Parallel()
	cal := domain.Calendar{Boundary: domain.DayBoundary{Hour: 5}}
	cases := []struct {
		in   time.Time
		want time.Time
	}{
		{at(2, 4, 59), at(1, 5, 0)},
		{at(2, 5, 0), at(2, 5, 0)},
		{at(2, 23, 0), at(2, 5, 0)},
		{at(1, 0, 0), time.Date(2023, 12, 31, 5, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		assert.True(t, tc.want.Equal(cal.DayStart(tc.in)), "in=%s got=%s", tc.in, cal.DayStart(tc.in))
	}
	assert.True(t, at(3, 5, 0).Equal(cal.NextDayStart(at(2, 5, 0))))
	assert.Equal(t, "2024-01-01", cal.DayKey(at(2, 4, 0)))
}

func TestMidnightDegeneratesToCalendarDays(t *testing.T) {
	t.Parallel()
	cal := domain.Calendar{Boundary: domain.Midnight}
	for h := 0; h < 24; h++ {
		assert.Equal(t, "2024-01-02", cal.DayKey(at(2, h, 30)))
	}
}

func TestDayLabelUsesFormatter(t *testing.T) {
	t.Parallel()
	cal := domain.Calendar{
		Boundary: domain.DayBoundary{Hour: 5},
		Label:    func(t time.Time) string { return t.Format("02/01/2006") },
	}
	assert.Equal(t, "01/01/2024", cal.DayLabel(at(2, 3, 0)))
	assert.Equal(t, "2024-01-02", domain.Calendar{}.DayLabel(at(2, 3, 0)))
}
