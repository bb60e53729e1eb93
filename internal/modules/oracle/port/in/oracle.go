package in

import (
	"context"

	"scrub/internal/modules/oracle/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.OracleInfo, error)
	Doctor(ctx context.Context) ([]dto.DoctorResult, error)
	// GenerateTasks asks an oracle for a task plan. An empty OracleName
	// picks the first enabled oracle with the capability.
	GenerateTasks(ctx context.Context, input dto.GenerateInput) (dto.GenerateOutput, error)
	// JudgeCleaning asks an oracle for a verdict on a before/after pair.
	JudgeCleaning(ctx context.Context, input dto.JudgeInput) (dto.JudgeOutput, error)
}
