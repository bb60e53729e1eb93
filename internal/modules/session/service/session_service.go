package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"scrub/internal/modules/session/domain"
	sessionout "scrub/internal/modules/session/port/out"
	"scrub/internal/platform/clock"
	"scrub/internal/platform/id"
)

// fallbackTasks is the degraded path when the task oracle is unreachable.
var fallbackTasks = []sessionout.GeneratedTask{
	{Title: "Clear visible clutter", Points: 10},
	{Title: "Wipe the main surfaces", Points: 10},
	{Title: "Take out the trash", Points: 10},
	{Title: "Put items back where they live", Points: 10},
	{Title: "Sweep or vacuum the floor", Points: 10},
}

type SessionService struct {
	clock      clock.Clock
	idGen      id.Generator
	assetsPath string
	store      sessionout.SessionStore
}

func NewSessionService(clock clock.Clock, idGen id.Generator, assetsPath string, store sessionout.SessionStore) *SessionService {
	return &SessionService{clock: clock, idGen: idGen, assetsPath: assetsPath, store: store}
}

func (s *SessionService) Now() time.Time {
	return s.clock.Now()
}

// NewSession assembles a fresh session for the area, attaching either the
// generated vision artifact or the persona's static asset.
func (s *SessionService) NewSession(area sessionout.AreaInfo, beforePhoto, generatedImage string) domain.Session {
	vision := generatedImage
	if vision == "" {
		vision = s.StaticVisionAsset(area.Persona)
	}
	return domain.NewSession(s.idGen.New(), area.ID, beforePhoto, vision, s.clock.Now())
}

// TasksFrom converts a generation result into owned tasks, falling back
// to the generic set when the oracle produced nothing usable.
func (s *SessionService) TasksFrom(generated []sessionout.GeneratedTask) []domain.Task {
	if len(generated) == 0 {
		generated = fallbackTasks
	}
	tasks := make([]domain.Task, 0, len(generated))
	for _, g := range generated {
		task := domain.Task{
			ID:     s.idGen.New(),
			Title:  g.Title,
			Detail: g.Detail,
			Points: g.Points,
		}
		if task.Points <= 0 {
			task.Points = 10
		}
		if err := task.Validate(); err != nil {
			continue
		}
		tasks = append(tasks, task)
	}
	if len(tasks) == 0 {
		return s.TasksFrom(fallbackTasks)
	}
	return tasks
}

func (s *SessionService) StaticVisionAsset(persona string) string {
	return filepath.Join(s.assetsPath, fmt.Sprintf("%s.png", persona))
}

func (s *SessionService) Persist(ctx context.Context, session domain.Session) error {
	return s.store.Save(ctx, session)
}
