package in

import (
	"context"

	"scrub/internal/modules/area/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateInput) (dto.AreaOutput, error)
	List(ctx context.Context) ([]dto.AreaOutput, error)
	Get(ctx context.Context, id string) (dto.AreaOutput, error)
	Remove(ctx context.Context, id string) error
	SetFirstVision(ctx context.Context, id, path string) error
}
