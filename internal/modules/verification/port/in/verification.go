package in

import (
	"context"

	"scrub/internal/modules/verification/dto"
)

type Usecase interface {
	// Request opens the ceremony on the area's latest session.
	Request(ctx context.Context, areaID string) (dto.VerificationOutput, error)
	// Submit runs the judged path: after photo plus an external verdict.
	Submit(ctx context.Context, input dto.SubmitInput) (dto.VerificationOutput, error)
	// Resolve settles a pending ceremony without judging.
	Resolve(ctx context.Context, input dto.ResolveInput) (dto.VerificationOutput, error)
	// Skip abandons the ceremony; totals collapse to base points.
	Skip(ctx context.Context, areaID string) (dto.VerificationOutput, error)
	Eligibility(ctx context.Context) (dto.EligibilityOutput, error)
}
