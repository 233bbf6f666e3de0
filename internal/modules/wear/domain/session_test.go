package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wearlog/internal/modules/wear/domain"
	apperrors "wearlog/internal/platform/errors"
)

func TestParseTimeOfDay(t *testing.T) {
	t.Parallel()
	valid := map[string]domain.TimeOfDay{
		"00:00":  {},
		"7:05":   {Hour: 7, Minute: 5},
		"23:59":  {Hour: 23, Minute: 59},
		" 12:30": {Hour: 12, Minute: 30},
	}
	for raw, want := range valid {
		got, err := domain.ParseTimeOfDay(raw)
		require.NoError(t, err, "parse %q", raw)
		assert.Equal(t, want, got, "parse %q", raw)
	}

	for _, raw := range []string{"", "24:00", "12:60", "12", "1230", "ab:cd", "-1:00", "12:5", "123:00"} {
		_, err := domain.ParseTimeOfDay(raw)
		var tErr *domain.TimeOfDayError
		assert.True(t, errors.As(err, &tErr), "expected TimeOfDayError for %q, got %v", raw, err)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "raw=%q", raw)
	}
}

func TestResolveMostRecentOccurrence(t *testing.T) {
	t.Parallel()
	now := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	assert.True(t, (domain.TimeOfDay{Hour: 7, Minute: 30}).Resolve(now).Equal(time.Date(2024, 3, 10, 7, 30, 0, 0, time.UTC)))
	assert.True(t, (domain.TimeOfDay{Hour: 8}).Resolve(now).Equal(now))
	assert.True(t, (domain.TimeOfDay{Hour: 23}).Resolve(now).Equal(time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)))
}

func TestValidateRejectsInvertedSession(t *testing.T) {
	t.Parallel()
	start := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	end := start.Add(-time.Minute)
	err := domain.WearingSession{ID: "s1", Start: start, End: &end}.Validate()
	assert.ErrorIs(t, err, apperrors.ErrMalformedSession)
	assert.NoError(t, domain.WearingSession{ID: "s1", Start: start}.Validate())
}
