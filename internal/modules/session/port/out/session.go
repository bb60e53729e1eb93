package out

import (
	"context"
	"time"

	"scrub/internal/modules/session/domain"
)

type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, sessionID string) (domain.Session, error)
	// Latest returns the area's newest session by creation time.
	Latest(ctx context.Context, areaID string) (domain.Session, error)
	// InProgress returns the area's single not-yet-completed session, if any.
	InProgress(ctx context.Context, areaID string) (domain.Session, bool, error)
	ListByArea(ctx context.Context, areaID string) ([]domain.Session, error)
	CountCompletedOn(ctx context.Context, day time.Time) (int, error)
	// LastPassedVerification reports when any session last passed the
	// ceremony; ok is false when no pass exists yet.
	LastPassedVerification(ctx context.Context) (at time.Time, ok bool, err error)
}

type PhotoStore interface {
	// Import copies a photo into managed storage and returns its path.
	Import(ctx context.Context, areaID, srcPath string) (string, error)
}

type GeneratedTask struct {
	Title  string
	Detail string
	Points int
}

type Generation struct {
	Tasks []GeneratedTask
	// ImagePath is the optional generated vision artifact.
	ImagePath string
}

// TaskGenerator is the external task/image oracle. Best effort: callers
// fall back to generic tasks when it fails.
type TaskGenerator interface {
	Generate(ctx context.Context, photoPath, persona, filterID string) (Generation, error)
}

// AnalyticsSink receives completion events. Fire and forget.
type AnalyticsSink interface {
	Record(ctx context.Context, event domain.CompletionEvent) error
}

// ProgressionHook is invoked once per first-time session completion.
type ProgressionHook interface {
	AwardBonus(ctx context.Context, areaID string) error
}

// ReportStore renders a completed session into a durable note.
type ReportStore interface {
	Save(ctx context.Context, session domain.Session, areaName string) (string, error)
}

type AreaInfo struct {
	ID              string
	Name            string
	Persona         string
	FirstVisionPath string
}

// AreaGateway is the session module's view of the area registry.
type AreaGateway interface {
	Get(ctx context.Context, areaID string) (AreaInfo, error)
	SetFirstVision(ctx context.Context, areaID, path string) error
}

// EconomyGateway exposes the streak and daily-target surface the
// lifecycle needs.
type EconomyGateway interface {
	DailyTarget(ctx context.Context) (int, error)
	RecordSessionStart(ctx context.Context, now time.Time) error
}
