package out

import (
	"context"

	"wearlog/internal/modules/tracking/domain"
)

type DayNoteStore interface {
	Write(ctx context.Context, dir string, note domain.DayNote) (string, error)
}
