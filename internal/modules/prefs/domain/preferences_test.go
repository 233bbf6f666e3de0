package domain_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wearlog/internal/modules/prefs/domain"
	apperrors "wearlog/internal/platform/errors"
)

func TestValidateGoal(t *testing.T) {
	t.Parallel()
	for _, ok := range []float64{0.5, 15, 24} {
		assert.NoError(t, domain.ValidateGoal(ok), "goal %v", ok)
	}
	for _, bad := range []float64{0, -1, 24.5, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, domain.ValidateGoal(bad), apperrors.ErrInvalidInput, "goal %v", bad)
	}

	_, err := domain.ParseGoal("fifteen")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	h, err := domain.ParseGoal(" 16.5 ")
	require.NoError(t, err)
	assert.Equal(t, 16.5, h)
}

func TestNormalizeDayStart(t *testing.T) {
	t.Parallel()
	got, err := domain.NormalizeDayStart("5:00")
	require.NoError(t, err)
	assert.Equal(t, "05:00", got)
	for _, bad := range []string{"500", "24:00", "05:7", "", "aa:bb"} {
		_, err := domain.NormalizeDayStart(bad)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "day start %q", bad)
	}
}
