package in

import (
	"context"

	"scrub/internal/modules/verification/dto"
	verificationin "scrub/internal/modules/verification/port/in"
)

type CLIHandler struct {
	usecase verificationin.Usecase
}

func NewCLIHandler(usecase verificationin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Request(ctx context.Context, areaID string) (dto.VerificationOutput, error) {
	return h.usecase.Request(ctx, areaID)
}

func (h CLIHandler) Submit(ctx context.Context, areaID, tier, afterPhotoPath string) (dto.VerificationOutput, error) {
	return h.usecase.Submit(ctx, dto.SubmitInput{AreaID: areaID, Tier: tier, AfterPhotoPath: afterPhotoPath})
}

func (h CLIHandler) Resolve(ctx context.Context, areaID, tier string, passed bool) (dto.VerificationOutput, error) {
	return h.usecase.Resolve(ctx, dto.ResolveInput{AreaID: areaID, Tier: tier, Passed: passed})
}

func (h CLIHandler) Skip(ctx context.Context, areaID string) (dto.VerificationOutput, error) {
	return h.usecase.Skip(ctx, areaID)
}

func (h CLIHandler) Eligibility(ctx context.Context) (dto.EligibilityOutput, error) {
	return h.usecase.Eligibility(ctx)
}
