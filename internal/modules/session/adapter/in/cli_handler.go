package in

import (
	"context"

	sessiondto "scrub/internal/modules/session/dto"
	sessionin "scrub/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, areaID, photoPath string) (sessiondto.StartOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{AreaID: areaID, PhotoPath: photoPath})
}

func (h CLIHandler) CompleteTask(ctx context.Context, areaID, taskID string) (sessiondto.CompleteTaskOutput, error) {
	return h.usecase.CompleteTask(ctx, sessiondto.CompleteTaskInput{AreaID: areaID, TaskID: taskID})
}

func (h CLIHandler) Status(ctx context.Context, areaID string) (sessiondto.SessionOutput, error) {
	return h.usecase.Status(ctx, areaID)
}
