package out

import (
	"context"

	"scrub/internal/modules/economy/domain"
)

type StreakStore interface {
	Load(ctx context.Context) (domain.StreakState, error)
	Save(ctx context.Context, state domain.StreakState) error
}

type LedgerStore interface {
	Load(ctx context.Context) (domain.Ledger, error)
	Save(ctx context.Context, ledger domain.Ledger) error
}

type SettingsStore interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
}

// EarningsSource derives total earned points from session scores.
type EarningsSource interface {
	TotalEarned(ctx context.Context) (float64, error)
}
