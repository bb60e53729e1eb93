package in

import (
	"context"

	"scrub/internal/modules/oracle/dto"
	oraclein "scrub/internal/modules/oracle/port/in"
)

type CLIHandler struct {
	usecase oraclein.Usecase
}

func NewCLIHandler(usecase oraclein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.OracleInfo, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return h.usecase.Doctor(ctx)
}
