package in

import (
	"context"

	"scrub/internal/modules/session/dto"
)

type Usecase interface {
	// Start runs the scan flow: gating, task generation, session
	// creation or extension, streak recording.
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	CompleteTask(ctx context.Context, input dto.CompleteTaskInput) (dto.CompleteTaskOutput, error)
	Status(ctx context.Context, areaID string) (dto.SessionOutput, error)
}
