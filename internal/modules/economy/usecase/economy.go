package usecase

import (
	"context"
	"time"

	"scrub/internal/modules/economy/domain"
	"scrub/internal/modules/economy/dto"
	economyin "scrub/internal/modules/economy/port/in"
	"scrub/internal/modules/economy/service"
	"scrub/internal/platform/tx"
)

type Interactor struct {
	svc *service.EconomyService
	txn tx.Manager
}

func NewInteractor(svc *service.EconomyService, txn tx.Manager) economyin.Usecase {
	return &Interactor{svc: svc, txn: txn}
}

func (i *Interactor) Balance(ctx context.Context) (dto.BalanceOutput, error) {
	ledger, earned, err := i.svc.Balance(ctx)
	if err != nil {
		return dto.BalanceOutput{}, err
	}
	return toBalance(ledger, earned), nil
}

func (i *Interactor) Spend(ctx context.Context, input dto.SpendInput) (dto.BalanceOutput, error) {
	var out dto.BalanceOutput
	err := i.txn.Within(ctx, func(ctx context.Context) error {
		ledger, earned, err := i.svc.Spend(ctx, input.Cost, input.RewardID)
		if err != nil {
			return err
		}
		out = toBalance(ledger, earned)
		return nil
	})
	if err != nil {
		return dto.BalanceOutput{}, err
	}
	return out, nil
}

func (i *Interactor) Streak(ctx context.Context) (dto.StreakOutput, error) {
	state, err := i.svc.Streak(ctx)
	if err != nil {
		return dto.StreakOutput{}, err
	}
	return dto.StreakOutput{Count: state.Count, LastSessionDay: state.LastSessionDay}, nil
}

func (i *Interactor) RecordSessionStart(ctx context.Context, now time.Time) error {
	return i.svc.RecordSessionStart(ctx, now)
}

func (i *Interactor) DailyTarget(ctx context.Context) (int, error) {
	return i.svc.DailyTarget(ctx)
}

func (i *Interactor) SetDailyTarget(ctx context.Context, target int) error {
	return i.svc.SetDailyTarget(ctx, target)
}

func toBalance(ledger domain.Ledger, earned float64) dto.BalanceOutput {
	unlocked := make([]dto.UnlockOutput, 0, len(ledger.Unlocked))
	for _, u := range ledger.Unlocked {
		unlocked = append(unlocked, dto.UnlockOutput{RewardID: u.RewardID, Cost: u.Cost, UnlockedAt: u.UnlockedAt})
	}
	return dto.BalanceOutput{
		TotalEarned: earned,
		SpentPoints: ledger.SpentPoints,
		Available:   ledger.Available(earned),
		Unlocked:    unlocked,
	}
}
