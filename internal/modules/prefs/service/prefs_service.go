package service

import (
	"context"
	"errors"
	"strconv"

	"wearlog/internal/modules/prefs/domain"
	"wearlog/internal/modules/prefs/dto"
	prefsout "wearlog/internal/modules/prefs/port/out"
	"wearlog/internal/platform/clock"
	apperrors "wearlog/internal/platform/errors"
	"wearlog/internal/platform/logger"
)

type PrefsService struct {
	clock    clock.Clock
	store    prefsout.PreferenceStore
	defaults domain.Preferences
	log      logger.Logger
}

func NewPrefsService(clk clock.Clock, store prefsout.PreferenceStore, defaults domain.Preferences, log logger.Logger) *PrefsService {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &PrefsService{clock: clk, store: store, defaults: defaults, log: log}
}

// Load merges stored values over the defaults. A corrupt stored goal is
// logged and replaced by the default rather than failing every read.
func (s *PrefsService) Load(ctx context.Context) (dto.PreferencesOutput, error) {
	out := dto.PreferencesOutput{
		GoalHours:         s.defaults.GoalHours,
		DayStartAt:        s.defaults.DayStartAt,
		GoalIsDefault:     true,
		DayStartIsDefault: true,
	}

	rawGoal, err := s.store.Get(ctx, domain.KeyGoalHours)
	switch {
	case err == nil:
		goal, perr := domain.ParseGoal(rawGoal)
		if perr != nil {
			s.log.Warnf("ignoring stored goal: %v", perr)
			break
		}
		out.GoalHours = goal
		out.GoalIsDefault = false
	case !errors.Is(err, apperrors.ErrNotFound):
		return dto.PreferencesOutput{}, err
	}

	rawStart, err := s.store.Get(ctx, domain.KeyDayStartAt)
	switch {
	case err == nil:
		out.DayStartAt = rawStart
		out.DayStartIsDefault = false
	case !errors.Is(err, apperrors.ErrNotFound):
		return dto.PreferencesOutput{}, err
	}
	return out, nil
}

func (s *PrefsService) SetGoal(ctx context.Context, hours float64) error {
	if err := domain.ValidateGoal(hours); err != nil {
		return err
	}
	if err := s.store.Put(ctx, domain.KeyGoalHours, strconv.FormatFloat(hours, 'f', -1, 64), s.clock.Now()); err != nil {
		return err
	}
	s.log.Infof("goal set to %vh", hours)
	return nil
}

func (s *PrefsService) SetDayStart(ctx context.Context, raw string) error {
	at, err := domain.NormalizeDayStart(raw)
	if err != nil {
		return err
	}
	if err := s.store.Put(ctx, domain.KeyDayStartAt, at, s.clock.Now()); err != nil {
		return err
	}
	s.log.Infof("day start set to %s", at)
	return nil
}

func (s *PrefsService) Clear(ctx context.Context) error {
	return s.store.DeleteAll(ctx)
}
