package dto

import "time"

type VerificationOutput struct {
	SessionID       string
	AreaID          string
	Requested       bool
	Tier            string
	Outcome         string
	BasePoints      int
	TotalPoints     float64
	BonusMultiplier float64
	BonusDelta      float64
	RequestedAt     time.Time
	VerifiedAt      time.Time
}

type SubmitInput struct {
	AreaID         string
	Tier           string
	AfterPhotoPath string
}

type ResolveInput struct {
	AreaID string
	Tier   string
	Passed bool
}

type EligibilityOutput struct {
	GoldenEligible      bool
	HasPassedBefore     bool
	DaysSinceLastPassed int
	CompletedToday      int
	DailyTarget         int
}
