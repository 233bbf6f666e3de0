package in

import (
	"context"

	"wearlog/internal/modules/prefs/dto"
)

type Usecase interface {
	Get(ctx context.Context) (dto.PreferencesOutput, error)
	SetGoal(ctx context.Context, input dto.SetGoalInput) (dto.PreferencesOutput, error)
	SetDayStart(ctx context.Context, input dto.SetDayStartInput) (dto.PreferencesOutput, error)
	// Reset deletes every session and restores the default preferences
	// atomically.
	Reset(ctx context.Context) error
}
