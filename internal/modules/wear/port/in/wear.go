package in

import (
	"context"
	"time"

	"wearlog/internal/modules/wear/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.SessionOutput, error)
	StartAt(ctx context.Context, input dto.ManualTimeInput) (dto.SessionOutput, error)
	Stop(ctx context.Context) (dto.SessionOutput, error)
	StopAt(ctx context.Context, input dto.ManualTimeInput) (dto.SessionOutput, error)
	Active(ctx context.Context) (dto.SessionOutput, error)
	List(ctx context.Context) ([]dto.SessionOutput, error)
	// Resume re-arms the live ticker when a session was left open.
	Resume(ctx context.Context) (bool, error)
	// Clear deletes every session. It joins a transaction carried by ctx.
	Clear(ctx context.Context) error
	Ticks() <-chan time.Time
	Close()
}
