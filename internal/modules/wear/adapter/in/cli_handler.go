package in

import (
	"context"
	"time"

	weardto "wearlog/internal/modules/wear/dto"
	wearin "wearlog/internal/modules/wear/port/in"
)

type CLIHandler struct {
	usecase wearin.Usecase
}

func NewCLIHandler(usecase wearin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context) (weardto.SessionOutput, error) {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) StartAt(ctx context.Context, at string) (weardto.SessionOutput, error) {
	return h.usecase.StartAt(ctx, weardto.ManualTimeInput{At: at})
}

func (h CLIHandler) Stop(ctx context.Context) (weardto.SessionOutput, error) {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) StopAt(ctx context.Context, at string) (weardto.SessionOutput, error) {
	return h.usecase.StopAt(ctx, weardto.ManualTimeInput{At: at})
}

func (h CLIHandler) Active(ctx context.Context) (weardto.SessionOutput, error) {
	return h.usecase.Active(ctx)
}

func (h CLIHandler) List(ctx context.Context) ([]weardto.SessionOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (bool, error) {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) Ticks() <-chan time.Time {
	return h.usecase.Ticks()
}

func (h CLIHandler) Close() {
	h.usecase.Close()
}
