package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"wearlog/internal/modules/wear/domain"
	wearout "wearlog/internal/modules/wear/port/out"
	"wearlog/internal/platform/clock"
	apperrors "wearlog/internal/platform/errors"
	"wearlog/internal/platform/id"
	"wearlog/internal/platform/logger"
)

// WearService records sessions and owns the live ticker handle.
type WearService struct {
	clock  clock.Clock
	idGen  id.Generator
	store  wearout.SessionStore
	ticker *clock.Ticker
	log    logger.Logger
}

func NewWearService(clk clock.Clock, idGen id.Generator, store wearout.SessionStore, ticker *clock.Ticker, log logger.Logger) *WearService {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &WearService{clock: clk, idGen: idGen, store: store, ticker: ticker, log: log}
}

func (s *WearService) Now() time.Time {
	return s.clock.Now()
}

// Open starts a session at the given instant. It refuses to open a second
// session and to start inside the previous one.
func (s *WearService) Open(ctx context.Context, at time.Time) (domain.WearingSession, error) {
	if at.After(s.clock.Now()) {
		return domain.WearingSession{}, fmt.Errorf("%w: start %s is in the future", apperrors.ErrInvalidInput, at.Format(time.RFC3339))
	}
	if _, err := s.store.LoadOpen(ctx); err == nil {
		return domain.WearingSession{}, apperrors.ErrActiveSessionExists
	} else if !errors.Is(err, apperrors.ErrNoActiveSession) {
		return domain.WearingSession{}, err
	}

	latest, err := s.store.Latest(ctx)
	switch {
	case err == nil:
		if latest.End != nil && at.Before(*latest.End) {
			return domain.WearingSession{}, fmt.Errorf("%w: start %s overlaps session %s", apperrors.ErrMalformedSession, at.Format(time.RFC3339), latest.ID)
		}
	case !errors.Is(err, apperrors.ErrNotFound):
		return domain.WearingSession{}, err
	}

	session := domain.WearingSession{ID: s.idGen.New(), Start: at}
	if err := session.Validate(); err != nil {
		return domain.WearingSession{}, err
	}
	if err := s.store.Insert(ctx, session); err != nil {
		return domain.WearingSession{}, err
	}
	s.log.Infof("session %s started at %s", session.ID, at.Format(time.RFC3339))
	return session, nil
}

// Finish closes the open session at the given instant.
func (s *WearService) Finish(ctx context.Context, at time.Time) (domain.WearingSession, error) {
	open, err := s.store.LoadOpen(ctx)
	if err != nil {
		return domain.WearingSession{}, err
	}
	if at.Before(open.Start) {
		return domain.WearingSession{}, fmt.Errorf("%w: stop %s is before start %s", apperrors.ErrMalformedSession, at.Format(time.RFC3339), open.Start.Format(time.RFC3339))
	}
	if err := s.store.Finish(ctx, open.ID, at); err != nil {
		return domain.WearingSession{}, err
	}
	open.End = &at
	s.log.Infof("session %s stopped after %s", open.ID, at.Sub(open.Start))
	return open, nil
}

func (s *WearService) Arm() {
	if s.ticker == nil {
		return
	}
	s.ticker.Arm()
	s.log.Debugf("live ticker armed")
}

func (s *WearService) Disarm() {
	if s.ticker == nil {
		return
	}
	s.ticker.Disarm()
	s.log.Debugf("live ticker disarmed")
}

func (s *WearService) Ticks() <-chan time.Time {
	if s.ticker == nil {
		return nil
	}
	return s.ticker.C()
}
