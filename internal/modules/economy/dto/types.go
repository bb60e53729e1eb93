package dto

import "time"

type BalanceOutput struct {
	TotalEarned float64
	SpentPoints int
	Available   float64
	Unlocked    []UnlockOutput
}

type UnlockOutput struct {
	RewardID   string
	Cost       int
	UnlockedAt time.Time
}

type SpendInput struct {
	RewardID string
	Cost     int
}

type StreakOutput struct {
	Count          int
	LastSessionDay time.Time
}
