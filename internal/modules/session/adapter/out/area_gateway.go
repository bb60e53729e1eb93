package out

import (
	"context"

	areain "scrub/internal/modules/area/port/in"
	sessionout "scrub/internal/modules/session/port/out"
)

// AreaUsecaseGateway adapts the area module's public usecase to the
// session lifecycle's narrow view of it.
type AreaUsecaseGateway struct {
	areas areain.Usecase
}

func NewAreaUsecaseGateway(areas areain.Usecase) *AreaUsecaseGateway {
	return &AreaUsecaseGateway{areas: areas}
}

func (g *AreaUsecaseGateway) Get(ctx context.Context, areaID string) (sessionout.AreaInfo, error) {
	area, err := g.areas.Get(ctx, areaID)
	if err != nil {
		return sessionout.AreaInfo{}, err
	}
	return sessionout.AreaInfo{
		ID:              area.ID,
		Name:            area.Name,
		Persona:         area.Persona,
		FirstVisionPath: area.FirstVisionPath,
	}, nil
}

func (g *AreaUsecaseGateway) SetFirstVision(ctx context.Context, areaID, path string) error {
	return g.areas.SetFirstVision(ctx, areaID, path)
}

var _ sessionout.AreaGateway = (*AreaUsecaseGateway)(nil)
