package usecase

import (
	"context"
	"errors"
	"time"

	"wearlog/internal/modules/wear/domain"
	"wearlog/internal/modules/wear/dto"
	wearin "wearlog/internal/modules/wear/port/in"
	wearout "wearlog/internal/modules/wear/port/out"
	"wearlog/internal/modules/wear/service"
	apperrors "wearlog/internal/platform/errors"
	"wearlog/internal/platform/tx"
)

type Interactor struct {
	svc   *service.WearService
	store wearout.SessionStore
	tx    tx.Manager
}

func NewInteractor(svc *service.WearService, store wearout.SessionStore, txm tx.Manager) wearin.Usecase {
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &Interactor{svc: svc, store: store, tx: txm}
}

func (i *Interactor) Start(ctx context.Context) (dto.SessionOutput, error) {
	return i.open(ctx, i.svc.Now())
}

func (i *Interactor) StartAt(ctx context.Context, input dto.ManualTimeInput) (dto.SessionOutput, error) {
	tod, err := domain.ParseTimeOfDay(input.At)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return i.open(ctx, tod.Resolve(i.svc.Now()))
}

func (i *Interactor) Stop(ctx context.Context) (dto.SessionOutput, error) {
	return i.finish(ctx, i.svc.Now())
}

func (i *Interactor) StopAt(ctx context.Context, input dto.ManualTimeInput) (dto.SessionOutput, error) {
	tod, err := domain.ParseTimeOfDay(input.At)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return i.finish(ctx, tod.Resolve(i.svc.Now()))
}

func (i *Interactor) open(ctx context.Context, at time.Time) (dto.SessionOutput, error) {
	var session domain.WearingSession
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		session, err = i.svc.Open(ctx, at)
		return err
	})
	if err != nil {
		return dto.SessionOutput{}, err
	}
	i.svc.Arm()
	return toOutput(session), nil
}

func (i *Interactor) finish(ctx context.Context, at time.Time) (dto.SessionOutput, error) {
	var session domain.WearingSession
	err := i.tx.Within(ctx, func(ctx context.Context) error {
		var err error
		session, err = i.svc.Finish(ctx, at)
		return err
	})
	if err != nil {
		return dto.SessionOutput{}, err
	}
	i.svc.Disarm()
	return toOutput(session), nil
}

func (i *Interactor) Active(ctx context.Context) (dto.SessionOutput, error) {
	session, err := i.store.LoadOpen(ctx)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.SessionOutput, error) {
	sessions, err := i.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SessionOutput, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toOutput(s))
	}
	return out, nil
}

func (i *Interactor) Resume(ctx context.Context) (bool, error) {
	_, err := i.store.LoadOpen(ctx)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	i.svc.Arm()
	return true, nil
}

func (i *Interactor) Clear(ctx context.Context) error {
	if err := i.store.DeleteAll(ctx); err != nil {
		return err
	}
	i.svc.Disarm()
	return nil
}

func (i *Interactor) Ticks() <-chan time.Time {
	return i.svc.Ticks()
}

func (i *Interactor) Close() {
	i.svc.Disarm()
}

func toOutput(s domain.WearingSession) dto.SessionOutput {
	return dto.SessionOutput{ID: s.ID, StartedAt: s.Start, EndedAt: s.End}
}
