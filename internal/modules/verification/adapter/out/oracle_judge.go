package out

import (
	"context"

	oracledto "scrub/internal/modules/oracle/dto"
	oraclein "scrub/internal/modules/oracle/port/in"
	verificationout "scrub/internal/modules/verification/port/out"
)

// OracleJudge delegates the pass/fail verdict to whichever enabled
// oracle can judge cleanings.
type OracleJudge struct {
	oracles oraclein.Usecase
}

func NewOracleJudge(oracles oraclein.Usecase) *OracleJudge {
	return &OracleJudge{oracles: oracles}
}

func (j *OracleJudge) Judge(ctx context.Context, beforePhoto, afterPhoto string) (bool, error) {
	output, err := j.oracles.JudgeCleaning(ctx, oracledto.JudgeInput{
		BeforePhotoPath: beforePhoto,
		AfterPhotoPath:  afterPhoto,
	})
	if err != nil {
		return false, err
	}
	return output.Passed, nil
}

var _ verificationout.Judge = (*OracleJudge)(nil)
