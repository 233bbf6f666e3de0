package out

import (
	"context"
	"time"

	"wearlog/internal/modules/wear/domain"
)

type SessionStore interface {
	Insert(ctx context.Context, session domain.WearingSession) error
	Finish(ctx context.Context, id string, endedAt time.Time) error
	// LoadOpen returns ErrNoActiveSession when every session is closed.
	LoadOpen(ctx context.Context) (domain.WearingSession, error)
	// Latest returns ErrNotFound on an empty history.
	Latest(ctx context.Context) (domain.WearingSession, error)
	List(ctx context.Context) ([]domain.WearingSession, error)
	DeleteAll(ctx context.Context) error
}
