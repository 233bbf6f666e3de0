package in

import (
	"context"

	"wearlog/internal/modules/tracking/dto"
)

type Usecase interface {
	Report(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error)
	// Export writes one markdown note per tracking day.
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
