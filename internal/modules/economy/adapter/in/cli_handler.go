package in

import (
	"context"

	economydto "scrub/internal/modules/economy/dto"
	economyin "scrub/internal/modules/economy/port/in"
)

type CLIHandler struct {
	usecase economyin.Usecase
}

func NewCLIHandler(usecase economyin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Balance(ctx context.Context) (economydto.BalanceOutput, error) {
	return h.usecase.Balance(ctx)
}

func (h CLIHandler) Spend(ctx context.Context, rewardID string, cost int) (economydto.BalanceOutput, error) {
	return h.usecase.Spend(ctx, economydto.SpendInput{RewardID: rewardID, Cost: cost})
}

func (h CLIHandler) Streak(ctx context.Context) (economydto.StreakOutput, error) {
	return h.usecase.Streak(ctx)
}

func (h CLIHandler) DailyTarget(ctx context.Context) (int, error) {
	return h.usecase.DailyTarget(ctx)
}

func (h CLIHandler) SetDailyTarget(ctx context.Context, target int) error {
	return h.usecase.SetDailyTarget(ctx, target)
}
