package in

import (
	"context"
	"time"

	"scrub/internal/modules/economy/dto"
)

type Usecase interface {
	Balance(ctx context.Context) (dto.BalanceOutput, error)
	Spend(ctx context.Context, input dto.SpendInput) (dto.BalanceOutput, error)
	Streak(ctx context.Context) (dto.StreakOutput, error)
	// RecordSessionStart moves the streak at most once per calendar day.
	RecordSessionStart(ctx context.Context, now time.Time) error
	DailyTarget(ctx context.Context) (int, error)
	SetDailyTarget(ctx context.Context, target int) error
}
