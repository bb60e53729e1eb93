package out

import (
	"context"

	"scrub/internal/modules/oracle/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
}

type Host interface {
	CheckLifecycle(ctx context.Context, manifest domain.Manifest) error
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	GenerateTasks(ctx context.Context, manifest domain.Manifest, input domain.GenerateRequest) (domain.TaskPlan, error)
	JudgeCleaning(ctx context.Context, manifest domain.Manifest, input domain.JudgeRequest) (domain.Judgment, error)
}
