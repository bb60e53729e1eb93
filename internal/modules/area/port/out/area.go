package out

import (
	"context"

	"scrub/internal/modules/area/domain"
)

type AreaStore interface {
	Save(ctx context.Context, area domain.Area) error
	Get(ctx context.Context, id string) (domain.Area, error)
	List(ctx context.Context) ([]domain.Area, error)
	// Delete removes the area and, by ownership, its sessions and tasks.
	Delete(ctx context.Context, id string) error
}
