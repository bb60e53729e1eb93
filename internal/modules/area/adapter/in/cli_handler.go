package in

import (
	"context"

	areadto "scrub/internal/modules/area/dto"
	areain "scrub/internal/modules/area/port/in"
)

type CLIHandler struct {
	usecase areain.Usecase
}

func NewCLIHandler(usecase areain.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, name, icon, color, persona string) (areadto.AreaOutput, error) {
	return h.usecase.Create(ctx, areadto.CreateInput{Name: name, Icon: icon, Color: color, Persona: persona})
}

func (h CLIHandler) List(ctx context.Context) ([]areadto.AreaOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Remove(ctx context.Context, id string) error {
	return h.usecase.Remove(ctx, id)
}
