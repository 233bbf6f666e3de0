package usecase

import (
	"context"
	"fmt"

	prefsin "wearlog/internal/modules/prefs/port/in"
	"wearlog/internal/modules/tracking/domain"
	"wearlog/internal/modules/tracking/dto"
	trackingin "wearlog/internal/modules/tracking/port/in"
	trackingout "wearlog/internal/modules/tracking/port/out"
	"wearlog/internal/modules/tracking/service"
	wearin "wearlog/internal/modules/wear/port/in"
	apperrors "wearlog/internal/platform/errors"
)

type Interactor struct {
	svc   *service.TrackingService
	wear  wearin.Usecase
	prefs prefsin.Usecase
	notes trackingout.DayNoteStore
}

func NewInteractor(svc *service.TrackingService, wear wearin.Usecase, prefs prefsin.Usecase, notes trackingout.DayNoteStore) trackingin.Usecase {
	return &Interactor{svc: svc, wear: wear, prefs: prefs, notes: notes}
}

func (i *Interactor) Report(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error) {
	snap, err := i.snapshot(ctx)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	return i.svc.Report(snap, input.Days)
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	if input.Dir == "" {
		return dto.ExportOutput{}, fmt.Errorf("%w: export directory is required", apperrors.ErrInvalidInput)
	}
	if i.notes == nil {
		return dto.ExportOutput{}, fmt.Errorf("day note store is not configured")
	}
	snap, err := i.snapshot(ctx)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	notes, err := i.svc.DayNotes(snap, input.Days)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	out := dto.ExportOutput{Dir: input.Dir, Paths: make([]string, 0, len(notes))}
	for _, note := range notes {
		path, err := i.notes.Write(ctx, input.Dir, note)
		if err != nil {
			return dto.ExportOutput{}, err
		}
		out.Paths = append(out.Paths, path)
	}
	return out, nil
}

func (i *Interactor) snapshot(ctx context.Context) (service.Snapshot, error) {
	prefs, err := i.prefs.Get(ctx)
	if err != nil {
		return service.Snapshot{}, err
	}
	sessions, err := i.wear.List(ctx)
	if err != nil {
		return service.Snapshot{}, err
	}
	snap := service.Snapshot{
		GoalHours:  prefs.GoalHours,
		DayStartAt: prefs.DayStartAt,
		Sessions:   make([]domain.Session, 0, len(sessions)),
	}
	for _, s := range sessions {
		snap.Sessions = append(snap.Sessions, domain.Session{Start: s.StartedAt, End: s.EndedAt})
	}
	return snap, nil
}
