package usecase

import (
	"context"

	"scrub/internal/modules/oracle/dto"
	oraclein "scrub/internal/modules/oracle/port/in"
	"scrub/internal/modules/oracle/service"
)

type Interactor struct {
	svc *service.OracleService
}

func NewInteractor(svc *service.OracleService) oraclein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) List(ctx context.Context) ([]dto.OracleInfo, error) {
	return i.svc.List(ctx)
}

func (i *Interactor) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	return i.svc.Doctor(ctx)
}

func (i *Interactor) GenerateTasks(ctx context.Context, input dto.GenerateInput) (dto.GenerateOutput, error) {
	return i.svc.GenerateTasks(ctx, input)
}

func (i *Interactor) JudgeCleaning(ctx context.Context, input dto.JudgeInput) (dto.JudgeOutput, error) {
	return i.svc.JudgeCleaning(ctx, input)
}
