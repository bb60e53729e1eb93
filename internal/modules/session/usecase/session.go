package usecase

import (
	"context"
	"fmt"

	"scrub/internal/modules/session/domain"
	"scrub/internal/modules/session/dto"
	sessionin "scrub/internal/modules/session/port/in"
	sessionout "scrub/internal/modules/session/port/out"
	"scrub/internal/modules/session/service"
	apperrors "scrub/internal/platform/errors"
	"scrub/internal/platform/tx"
)

type Interactor struct {
	svc         *service.SessionService
	store       sessionout.SessionStore
	photos      sessionout.PhotoStore
	generator   sessionout.TaskGenerator
	analytics   sessionout.AnalyticsSink
	progression sessionout.ProgressionHook
	reports     sessionout.ReportStore
	areas       sessionout.AreaGateway
	economy     sessionout.EconomyGateway
	txn         tx.Manager
}

func NewInteractor(
	svc *service.SessionService,
	store sessionout.SessionStore,
	photos sessionout.PhotoStore,
	generator sessionout.TaskGenerator,
	analytics sessionout.AnalyticsSink,
	progression sessionout.ProgressionHook,
	reports sessionout.ReportStore,
	areas sessionout.AreaGateway,
	economy sessionout.EconomyGateway,
	txn tx.Manager,
) sessionin.Usecase {
	return &Interactor{
		svc:         svc,
		store:       store,
		photos:      photos,
		generator:   generator,
		analytics:   analytics,
		progression: progression,
		reports:     reports,
		areas:       areas,
		economy:     economy,
		txn:         txn,
	}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error) {
	area, err := i.areas.Get(ctx, input.AreaID)
	if err != nil {
		return dto.StartOutput{}, err
	}

	now := i.svc.Now()
	target, err := i.economy.DailyTarget(ctx)
	if err != nil {
		return dto.StartOutput{}, err
	}
	if target <= 0 {
		return dto.StartOutput{}, apperrors.ErrKitchenClosed
	}
	completedToday, err := i.store.CountCompletedOn(ctx, now)
	if err != nil {
		return dto.StartOutput{}, err
	}
	if completedToday >= target {
		return dto.StartOutput{}, apperrors.ErrKitchenClosed
	}

	inProgress, hasInProgress, err := i.store.InProgress(ctx, input.AreaID)
	if err != nil {
		return dto.StartOutput{}, err
	}
	mode := domain.DecideStartMode(area.FirstVisionPath != "", hasInProgress)
	if mode != domain.StartModeAppendTasks && hasInProgress {
		return dto.StartOutput{}, apperrors.ErrSessionActive
	}
	if input.PhotoPath == "" {
		return dto.StartOutput{}, apperrors.ErrPhotoRequired
	}
	photo, err := i.photos.Import(ctx, input.AreaID, input.PhotoPath)
	if err != nil {
		return dto.StartOutput{}, err
	}

	warning := ""
	generation, genErr := i.generator.Generate(ctx, photo, area.Persona, string(mode))
	if genErr != nil {
		warning = fmt.Sprintf("task oracle unavailable, using generic tasks: %v", genErr)
		generation = sessionout.Generation{}
	}
	tasks := i.svc.TasksFrom(generation.Tasks)

	if mode == domain.StartModeAppendTasks {
		added := inProgress.AddTasks(tasks)
		if err := i.txn.Within(ctx, func(ctx context.Context) error {
			return i.store.Save(ctx, inProgress)
		}); err != nil {
			return dto.StartOutput{}, err
		}
		return dto.StartOutput{
			SessionID:   inProgress.ID,
			AreaID:      area.ID,
			Mode:        string(mode),
			TaskCount:   added,
			VisionImage: inProgress.VisionImage,
			StartedAt:   inProgress.CreatedAt,
			Warning:     warning,
		}, nil
	}

	session := i.svc.NewSession(area, photo, generation.ImagePath)
	added := session.AddTasks(tasks)
	if err := i.txn.Within(ctx, func(ctx context.Context) error {
		if err := i.store.Save(ctx, session); err != nil {
			return err
		}
		if err := i.economy.RecordSessionStart(ctx, now); err != nil {
			return err
		}
		if mode == domain.StartModeDreamVision {
			return i.areas.SetFirstVision(ctx, area.ID, session.VisionImage)
		}
		return nil
	}); err != nil {
		return dto.StartOutput{}, err
	}

	return dto.StartOutput{
		SessionID:   session.ID,
		AreaID:      area.ID,
		Mode:        string(mode),
		TaskCount:   added,
		VisionImage: session.VisionImage,
		StartedAt:   session.CreatedAt,
		Warning:     warning,
	}, nil
}

func (i *Interactor) CompleteTask(ctx context.Context, input dto.CompleteTaskInput) (dto.CompleteTaskOutput, error) {
	area, err := i.areas.Get(ctx, input.AreaID)
	if err != nil {
		return dto.CompleteTaskOutput{}, err
	}
	session, ok, err := i.store.InProgress(ctx, input.AreaID)
	if err != nil {
		return dto.CompleteTaskOutput{}, err
	}
	if !ok {
		return dto.CompleteTaskOutput{}, apperrors.ErrNoSession
	}

	now := i.svc.Now()
	task, done, err := session.CompleteTask(input.TaskID, now)
	if err != nil {
		return dto.CompleteTaskOutput{}, fmt.Errorf("%w: %v", apperrors.ErrNotFound, err)
	}
	if !done {
		return dto.CompleteTaskOutput{
			SessionID:   session.ID,
			TaskID:      task.ID,
			AlreadyDone: true,
			BasePoints:  session.BasePoints,
			TotalPoints: session.TotalPoints,
		}, nil
	}

	if err := i.txn.Within(ctx, func(ctx context.Context) error {
		return i.store.Save(ctx, session)
	}); err != nil {
		return dto.CompleteTaskOutput{}, err
	}

	// Best effort: a dropped event never fails the completion.
	_ = i.analytics.Record(ctx, domain.NewCompletionEvent(area.ID, area.Persona, task.Points, now))

	out := dto.CompleteTaskOutput{
		SessionID:        session.ID,
		TaskID:           task.ID,
		PointsEarned:     task.Points,
		BasePoints:       session.BasePoints,
		TotalPoints:      session.TotalPoints,
		SessionCompleted: session.Completed(),
	}
	if session.Completed() {
		_ = i.progression.AwardBonus(ctx, area.ID)
		if path, err := i.reports.Save(ctx, session, area.Name); err != nil {
			out.Warning = fmt.Sprintf("completion report not written: %v", err)
		} else {
			out.ReportPath = path
		}
	}
	return out, nil
}

func (i *Interactor) Status(ctx context.Context, areaID string) (dto.SessionOutput, error) {
	if _, err := i.areas.Get(ctx, areaID); err != nil {
		return dto.SessionOutput{}, err
	}
	session, err := i.store.Latest(ctx, areaID)
	if err != nil {
		return dto.SessionOutput{}, err
	}
	return ToSessionOutput(session), nil
}

// ToSessionOutput maps a domain session to its transport shape.
func ToSessionOutput(session domain.Session) dto.SessionOutput {
	tasks := make([]dto.TaskOutput, 0, len(session.Tasks))
	for _, t := range session.Tasks {
		tasks = append(tasks, dto.TaskOutput{
			ID:        t.ID,
			Title:     t.Title,
			Detail:    t.Detail,
			Points:    t.Points,
			Completed: t.Completed(),
		})
	}
	return dto.SessionOutput{
		SessionID:       session.ID,
		AreaID:          session.AreaID,
		CreatedAt:       session.CreatedAt,
		CompletedAt:     session.CompletedAt,
		Completed:       session.Completed(),
		Requested:       session.Verification.Requested,
		Tier:            string(session.Verification.Tier),
		Outcome:         string(session.Verification.Outcome),
		BasePoints:      session.BasePoints,
		BonusMultiplier: session.BonusMultiplier,
		TotalPoints:     session.TotalPoints,
		BeforePhoto:     session.BeforePhoto,
		AfterPhoto:      session.AfterPhoto,
		VisionImage:     session.VisionImage,
		Tasks:           tasks,
	}
}
