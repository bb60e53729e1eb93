package out

import (
	"context"
	"time"

	economyin "scrub/internal/modules/economy/port/in"
	sessionout "scrub/internal/modules/session/port/out"
)

// EconomyUsecaseGateway adapts the economy module's public usecase to
// the session lifecycle's streak and quota needs.
type EconomyUsecaseGateway struct {
	economy economyin.Usecase
}

func NewEconomyUsecaseGateway(economy economyin.Usecase) *EconomyUsecaseGateway {
	return &EconomyUsecaseGateway{economy: economy}
}

func (g *EconomyUsecaseGateway) DailyTarget(ctx context.Context) (int, error) {
	return g.economy.DailyTarget(ctx)
}

func (g *EconomyUsecaseGateway) RecordSessionStart(ctx context.Context, now time.Time) error {
	return g.economy.RecordSessionStart(ctx, now)
}

var _ sessionout.EconomyGateway = (*EconomyUsecaseGateway)(nil)
