package in

import (
	"context"

	prefsdto "wearlog/internal/modules/prefs/dto"
	prefsin "wearlog/internal/modules/prefs/port/in"
)

type CLIHandler struct {
	usecase prefsin.Usecase
}

func NewCLIHandler(usecase prefsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Show(ctx context.Context) (prefsdto.PreferencesOutput, error) {
	return h.usecase.Get(ctx)
}

func (h CLIHandler) SetGoal(ctx context.Context, hours float64) (prefsdto.PreferencesOutput, error) {
	return h.usecase.SetGoal(ctx, prefsdto.SetGoalInput{Hours: hours})
}

func (h CLIHandler) SetDayStart(ctx context.Context, at string) (prefsdto.PreferencesOutput, error) {
	return h.usecase.SetDayStart(ctx, prefsdto.SetDayStartInput{At: at})
}

func (h CLIHandler) Reset(ctx context.Context) error {
	return h.usecase.Reset(ctx)
}
