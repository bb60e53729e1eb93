package service

import (
	"context"
	"fmt"
	"time"

	"scrub/internal/modules/economy/domain"
	economyout "scrub/internal/modules/economy/port/out"
	"scrub/internal/platform/clock"
	apperrors "scrub/internal/platform/errors"
)

type EconomyService struct {
	clock    clock.Clock
	streaks  economyout.StreakStore
	ledgers  economyout.LedgerStore
	settings economyout.SettingsStore
	earnings economyout.EarningsSource
}

func NewEconomyService(
	clock clock.Clock,
	streaks economyout.StreakStore,
	ledgers economyout.LedgerStore,
	settings economyout.SettingsStore,
	earnings economyout.EarningsSource,
) *EconomyService {
	return &EconomyService{clock: clock, streaks: streaks, ledgers: ledgers, settings: settings, earnings: earnings}
}

func (s *EconomyService) Balance(ctx context.Context) (domain.Ledger, float64, error) {
	ledger, err := s.ledgers.Load(ctx)
	if err != nil {
		return domain.Ledger{}, 0, err
	}
	earned, err := s.earnings.TotalEarned(ctx)
	if err != nil {
		return domain.Ledger{}, 0, err
	}
	return ledger, earned, nil
}

// Spend atomically checks the balance and records the unlock. No partial
// spends: either the full cost fits or nothing changes.
func (s *EconomyService) Spend(ctx context.Context, cost int, rewardID string) (domain.Ledger, float64, error) {
	if cost <= 0 {
		return domain.Ledger{}, 0, fmt.Errorf("%w: cost must be positive", apperrors.ErrInvalidInput)
	}
	if rewardID == "" {
		return domain.Ledger{}, 0, fmt.Errorf("%w: reward id is required", apperrors.ErrInvalidInput)
	}
	ledger, earned, err := s.Balance(ctx)
	if err != nil {
		return domain.Ledger{}, 0, err
	}
	if !ledger.CanSpend(earned, cost) {
		return domain.Ledger{}, 0, apperrors.ErrInsufficientPoints
	}
	ledger.Spend(cost, rewardID, s.clock.Now())
	if err := s.ledgers.Save(ctx, ledger); err != nil {
		return domain.Ledger{}, 0, err
	}
	return ledger, earned, nil
}

// RecordSessionStart loads, moves, and saves the streak; a same-day call
// is a no-op.
func (s *EconomyService) RecordSessionStart(ctx context.Context, now time.Time) error {
	state, err := s.streaks.Load(ctx)
	if err != nil {
		return err
	}
	if !state.RecordSessionStart(now) {
		return nil
	}
	return s.streaks.Save(ctx, state)
}

func (s *EconomyService) Streak(ctx context.Context) (domain.StreakState, error) {
	return s.streaks.Load(ctx)
}

func (s *EconomyService) DailyTarget(ctx context.Context) (int, error) {
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return 0, err
	}
	return settings.DailyTarget, nil
}

func (s *EconomyService) SetDailyTarget(ctx context.Context, target int) error {
	if target < 0 {
		return fmt.Errorf("%w: daily target must be non-negative", apperrors.ErrInvalidInput)
	}
	settings, err := s.settings.Load(ctx)
	if err != nil {
		return err
	}
	settings.DailyTarget = target
	return s.settings.Save(ctx, settings)
}
