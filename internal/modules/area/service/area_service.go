package service

import (
	"context"
	"strings"

	"scrub/internal/modules/area/domain"
	areaout "scrub/internal/modules/area/port/out"
	"scrub/internal/platform/clock"
	"scrub/internal/platform/id"
)

type AreaService struct {
	clock clock.Clock
	idGen id.Generator
	store areaout.AreaStore
}

func NewAreaService(clock clock.Clock, idGen id.Generator, store areaout.AreaStore) *AreaService {
	return &AreaService{clock: clock, idGen: idGen, store: store}
}

func (s *AreaService) Create(ctx context.Context, name, icon, color string, persona domain.Persona) (domain.Area, error) {
	now := s.clock.Now()
	area := domain.Area{
		ID:        s.idGen.New(),
		Name:      strings.TrimSpace(name),
		Icon:      icon,
		Color:     color,
		Persona:   persona,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := area.Validate(); err != nil {
		return domain.Area{}, err
	}
	if err := s.store.Save(ctx, area); err != nil {
		return domain.Area{}, err
	}
	return area, nil
}

func (s *AreaService) SetFirstVision(ctx context.Context, area domain.Area, path string) (domain.Area, error) {
	area.FirstVisionPath = path
	area.UpdatedAt = s.clock.Now()
	if err := s.store.Save(ctx, area); err != nil {
		return domain.Area{}, err
	}
	return area, nil
}
