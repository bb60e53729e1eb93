package service

import (
	"context"
	"fmt"
	"time"

	sessiondomain "scrub/internal/modules/session/domain"
	"scrub/internal/modules/verification/domain"
	"scrub/internal/modules/verification/dto"
	verificationout "scrub/internal/modules/verification/port/out"
	"scrub/internal/platform/clock"
	apperrors "scrub/internal/platform/errors"
)

type VerificationService struct {
	clock    clock.Clock
	sessions verificationout.SessionRepo
	economy  verificationout.EconomyGateway
}

func NewVerificationService(clock clock.Clock, sessions verificationout.SessionRepo, economy verificationout.EconomyGateway) *VerificationService {
	return &VerificationService{clock: clock, sessions: sessions, economy: economy}
}

func (s *VerificationService) Now() time.Time {
	return s.clock.Now()
}

// Latest resolves the area's newest session, the only one a ceremony
// may target.
func (s *VerificationService) Latest(ctx context.Context, areaID string) (sessiondomain.Session, error) {
	session, err := s.sessions.Latest(ctx, areaID)
	if err != nil {
		return sessiondomain.Session{}, fmt.Errorf("%w: area %s", apperrors.ErrNoSession, areaID)
	}
	return session, nil
}

// ParseTier validates raw tier input. An empty string means no tier.
func (s *VerificationService) ParseTier(raw string) (sessiondomain.Tier, error) {
	if raw == "" {
		return sessiondomain.TierNone, nil
	}
	tier := sessiondomain.Tier(raw)
	if err := tier.Validate(); err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return tier, nil
}

func (s *VerificationService) Eligibility(ctx context.Context) (dto.EligibilityOutput, error) {
	now := s.clock.Now()
	target, err := s.economy.DailyTarget(ctx)
	if err != nil {
		return dto.EligibilityOutput{}, err
	}
	completedToday, err := s.sessions.CountCompletedOn(ctx, now)
	if err != nil {
		return dto.EligibilityOutput{}, err
	}
	lastPassed, hasPassed, err := s.sessions.LastPassedVerification(ctx)
	if err != nil {
		return dto.EligibilityOutput{}, err
	}
	out := dto.EligibilityOutput{
		GoldenEligible:  domain.GoldenEligible(lastPassed, hasPassed, now, completedToday, target),
		HasPassedBefore: hasPassed,
		CompletedToday:  completedToday,
		DailyTarget:     target,
	}
	if hasPassed {
		out.DaysSinceLastPassed = domain.DaysSince(lastPassed, now)
	}
	return out, nil
}

// CheckResolution enforces the manual-resolution choices: a pass must
// name a reward tier, a fail carries none.
func (s *VerificationService) CheckResolution(tier sessiondomain.Tier, passed bool) error {
	if passed && tier == sessiondomain.TierNone {
		return fmt.Errorf("%w: a passed resolution needs a tier", apperrors.ErrInvalidInput)
	}
	if !passed && tier != sessiondomain.TierNone {
		return fmt.Errorf("%w: a failed resolution carries no tier", apperrors.ErrInvalidInput)
	}
	return nil
}

// CheckTierAllowed rejects a golden request when the eligibility gate is
// closed. Other tiers are always allowed.
func (s *VerificationService) CheckTierAllowed(ctx context.Context, tier sessiondomain.Tier) error {
	if tier != sessiondomain.TierGolden {
		return nil
	}
	eligibility, err := s.Eligibility(ctx)
	if err != nil {
		return err
	}
	if !eligibility.GoldenEligible {
		return apperrors.ErrGoldenNotEligible
	}
	return nil
}
