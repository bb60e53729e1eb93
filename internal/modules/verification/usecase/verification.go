package usecase

import (
	"context"
	"fmt"

	sessiondomain "scrub/internal/modules/session/domain"
	"scrub/internal/modules/verification/dto"
	verificationin "scrub/internal/modules/verification/port/in"
	verificationout "scrub/internal/modules/verification/port/out"
	"scrub/internal/modules/verification/service"
	apperrors "scrub/internal/platform/errors"
	"scrub/internal/platform/tx"
)

type Interactor struct {
	svc      *service.VerificationService
	sessions verificationout.SessionRepo
	judge    verificationout.Judge
	photos   verificationout.PhotoImporter
	txn      tx.Manager
}

func NewInteractor(
	svc *service.VerificationService,
	sessions verificationout.SessionRepo,
	judge verificationout.Judge,
	photos verificationout.PhotoImporter,
	txn tx.Manager,
) verificationin.Usecase {
	return &Interactor{svc: svc, sessions: sessions, judge: judge, photos: photos, txn: txn}
}

func (i *Interactor) Request(ctx context.Context, areaID string) (dto.VerificationOutput, error) {
	session, err := i.svc.Latest(ctx, areaID)
	if err != nil {
		return dto.VerificationOutput{}, err
	}
	session.RequestVerification(i.svc.Now())
	if err := i.save(ctx, session); err != nil {
		return dto.VerificationOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Submit(ctx context.Context, input dto.SubmitInput) (dto.VerificationOutput, error) {
	tier, err := i.svc.ParseTier(input.Tier)
	if err != nil {
		return dto.VerificationOutput{}, err
	}
	session, err := i.svc.Latest(ctx, input.AreaID)
	if err != nil {
		return dto.VerificationOutput{}, err
	}
	if session.BeforePhoto == "" {
		return dto.VerificationOutput{}, fmt.Errorf("%w: session has no before photo", apperrors.ErrInvalidPhotoData)
	}
	if err := i.svc.CheckTierAllowed(ctx, tier); err != nil {
		return dto.VerificationOutput{}, err
	}
	afterPhoto, err := i.photos.Import(ctx, input.AreaID, input.AfterPhotoPath)
	if err != nil {
		return dto.VerificationOutput{}, err
	}
	passed, err := i.judge.Judge(ctx, session.BeforePhoto, afterPhoto)
	if err != nil {
		return dto.VerificationOutput{}, fmt.Errorf("%w: %v", apperrors.ErrJudgingFailed, err)
	}
	session.ApplyVerdict(tier, passed, afterPhoto, i.svc.Now())
	if err := i.save(ctx, session); err != nil {
		return dto.VerificationOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Resolve(ctx context.Context, input dto.ResolveInput) (dto.VerificationOutput, error) {
	tier, err := i.svc.ParseTier(input.Tier)
	if err != nil {
		return dto.VerificationOutput{}, err
	}
	if err := i.svc.CheckResolution(tier, input.Passed); err != nil {
		return dto.VerificationOutput{}, err
	}
	session, err := i.svc.Latest(ctx, input.AreaID)
	if err != nil {
		return dto.VerificationOutput{}, err
	}
	if session.Verification.Outcome != sessiondomain.OutcomePending {
		return dto.VerificationOutput{}, apperrors.ErrNoPendingVerification
	}
	if err := i.svc.CheckTierAllowed(ctx, tier); err != nil {
		return dto.VerificationOutput{}, err
	}
	session.ApplyVerdict(tier, input.Passed, "", i.svc.Now())
	if err := i.save(ctx, session); err != nil {
		return dto.VerificationOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Skip(ctx context.Context, areaID string) (dto.VerificationOutput, error) {
	session, err := i.svc.Latest(ctx, areaID)
	if err != nil {
		return dto.VerificationOutput{}, err
	}
	session.SkipVerification()
	if err := i.save(ctx, session); err != nil {
		return dto.VerificationOutput{}, err
	}
	return toOutput(session), nil
}

func (i *Interactor) Eligibility(ctx context.Context) (dto.EligibilityOutput, error) {
	return i.svc.Eligibility(ctx)
}

func (i *Interactor) save(ctx context.Context, session sessiondomain.Session) error {
	return i.txn.Within(ctx, func(ctx context.Context) error {
		return i.sessions.Save(ctx, session)
	})
}

func toOutput(session sessiondomain.Session) dto.VerificationOutput {
	return dto.VerificationOutput{
		SessionID:       session.ID,
		AreaID:          session.AreaID,
		Requested:       session.Verification.Requested,
		Tier:            string(session.Verification.Tier),
		Outcome:         string(session.Verification.Outcome),
		BasePoints:      session.BasePoints,
		TotalPoints:     session.TotalPoints,
		BonusMultiplier: session.BonusMultiplier,
		BonusDelta:      session.BonusDelta(),
		RequestedAt:     session.Verification.RequestedAt,
		VerifiedAt:      session.Verification.VerifiedAt,
	}
}
