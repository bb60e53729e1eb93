package out

import (
	"context"
	"time"

	sessiondomain "scrub/internal/modules/session/domain"
)

// SessionRepo is the coordinator's view of session persistence. The
// session module's sqlite store satisfies it directly.
type SessionRepo interface {
	Save(ctx context.Context, session sessiondomain.Session) error
	Latest(ctx context.Context, areaID string) (sessiondomain.Session, error)
	CountCompletedOn(ctx context.Context, day time.Time) (int, error)
	LastPassedVerification(ctx context.Context) (at time.Time, ok bool, err error)
}

// Judge renders the external pass/fail verdict on a before/after pair.
type Judge interface {
	Judge(ctx context.Context, beforePhoto, afterPhoto string) (passed bool, err error)
}

// PhotoImporter copies an after photo into managed storage.
type PhotoImporter interface {
	Import(ctx context.Context, areaID, srcPath string) (string, error)
}

// EconomyGateway exposes the daily target for eligibility math.
type EconomyGateway interface {
	DailyTarget(ctx context.Context) (int, error)
}
