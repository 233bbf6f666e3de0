package in

import (
	"context"

	trackingdto "wearlog/internal/modules/tracking/dto"
	trackingin "wearlog/internal/modules/tracking/port/in"
)

type CLIHandler struct {
	usecase trackingin.Usecase
}

func NewCLIHandler(usecase trackingin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Report(ctx context.Context, days int) (trackingdto.ReportOutput, error) {
	return h.usecase.Report(ctx, trackingdto.ReportInput{Days: days})
}

func (h CLIHandler) Export(ctx context.Context, dir string, days int) (trackingdto.ExportOutput, error) {
	return h.usecase.Export(ctx, trackingdto.ExportInput{Dir: dir, Days: days})
}
