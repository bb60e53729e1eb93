package usecase

import (
	"context"

	"scrub/internal/modules/area/domain"
	"scrub/internal/modules/area/dto"
	areain "scrub/internal/modules/area/port/in"
	areaout "scrub/internal/modules/area/port/out"
	"scrub/internal/modules/area/service"
	"scrub/internal/platform/tx"
)

type Interactor struct {
	svc   *service.AreaService
	store areaout.AreaStore
	txn   tx.Manager
}

func NewInteractor(svc *service.AreaService, store areaout.AreaStore, txn tx.Manager) areain.Usecase {
	return &Interactor{svc: svc, store: store, txn: txn}
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateInput) (dto.AreaOutput, error) {
	persona := domain.Persona(input.Persona)
	if input.Persona == "" {
		persona = domain.PersonaSparkle
	}
	area, err := i.svc.Create(ctx, input.Name, input.Icon, input.Color, persona)
	if err != nil {
		return dto.AreaOutput{}, err
	}
	return toOutput(area), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.AreaOutput, error) {
	areas, err := i.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AreaOutput, 0, len(areas))
	for _, area := range areas {
		out = append(out, toOutput(area))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, id string) (dto.AreaOutput, error) {
	area, err := i.store.Get(ctx, id)
	if err != nil {
		return dto.AreaOutput{}, err
	}
	return toOutput(area), nil
}

func (i *Interactor) Remove(ctx context.Context, id string) error {
	if _, err := i.store.Get(ctx, id); err != nil {
		return err
	}
	return i.txn.Within(ctx, func(ctx context.Context) error {
		return i.store.Delete(ctx, id)
	})
}

func (i *Interactor) SetFirstVision(ctx context.Context, id, path string) error {
	area, err := i.store.Get(ctx, id)
	if err != nil {
		return err
	}
	_, err = i.svc.SetFirstVision(ctx, area, path)
	return err
}

func toOutput(area domain.Area) dto.AreaOutput {
	return dto.AreaOutput{
		ID:              area.ID,
		Name:            area.Name,
		Icon:            area.Icon,
		Color:           area.Color,
		Persona:         string(area.Persona),
		FirstVisionPath: area.FirstVisionPath,
		CreatedAt:       area.CreatedAt,
	}
}
