package usecase

import (
	"context"

	"wearlog/internal/modules/prefs/dto"
	prefsin "wearlog/internal/modules/prefs/port/in"
	"wearlog/internal/modules/prefs/service"
	wearin "wearlog/internal/modules/wear/port/in"
	"wearlog/internal/platform/tx"
)

type Interactor struct {
	svc  *service.PrefsService
	wear wearin.Usecase
	tx   tx.Manager
}

func NewInteractor(svc *service.PrefsService, wear wearin.Usecase, txm tx.Manager) prefsin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &Interactor{svc: svc, wear: wear, tx: txm}
}

func (i *Interactor) Get(ctx context.Context) (dto.PreferencesOutput, error) {
	return i.svc.Load(ctx)
}

func (i *Interactor) SetGoal(ctx context.Context, input dto.SetGoalInput) (dto.PreferencesOutput, error) {
	if err := i.svc.SetGoal(ctx, input.Hours); err != nil {
		return dto.PreferencesOutput{}, err
	}
	return i.svc.Load(ctx)
}

func (i *Interactor) SetDayStart(ctx context.Context, input dto.SetDayStartInput) (dto.PreferencesOutput, error) {
	if err := i.svc.SetDayStart(ctx, input.At); err != nil {
		return dto.PreferencesOutput{}, err
	}
	return i.svc.Load(ctx)
}

func (i *Interactor) Reset(ctx context.Context) error {
	return i.tx.Within(ctx, func(ctx context.Context) error {
		if i.wear != nil {
			if err := i.wear.Clear(ctx); err != nil {
				return err
			}
		}
		return i.svc.Clear(ctx)
	})
}
