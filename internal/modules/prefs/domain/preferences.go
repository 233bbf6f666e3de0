package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "wearlog/internal/platform/errors"
)

const (
	KeyGoalHours  = "goal_hours"
	KeyDayStartAt = "day_start_at"

	MaxGoalHours = 24
)

type Preferences struct {
	GoalHours float64
	// DayStartAt is kept raw; legacy packed values like "500" are
	// interpreted by the tracking calendar.
	DayStartAt string
}

func ValidateGoal(hours float64) error {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 || hours > MaxGoalHours {
		return fmt.Errorf("%w: goal must be within (0, %d] hours, got %v", apperrors.ErrInvalidInput, MaxGoalHours, hours)
	}
	return nil
}

func ParseGoal(raw string) (float64, error) {
	hours, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: goal %q is not a number", apperrors.ErrInvalidInput, raw)
	}
	return hours, ValidateGoal(hours)
}

// NormalizeDayStart validates a new day start and renders it as HH:MM.
func NormalizeDayStart(raw string) (string, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return "", fmt.Errorf("%w: day start %q must be HH:MM", apperrors.ErrInvalidInput, raw)
	}
	h, errH := strconv.Atoi(hh)
	m, errM := strconv.Atoi(mm)
	if errH != nil || errM != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return "", fmt.Errorf("%w: day start %q is out of range", apperrors.ErrInvalidInput, raw)
	}
	return fmt.Sprintf("%02d:%02d", h, m), nil
}
