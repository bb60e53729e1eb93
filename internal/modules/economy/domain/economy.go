package domain

import "time"

const DefaultDailyTarget = 2

// StreakState counts consecutive-use momentum at calendar-day
// granularity. It moves at most once per day, on session start only.
type StreakState struct {
	Count          int
	LastSessionDay time.Time
}

// RecordSessionStart bumps the streak when now falls on a different
// calendar day than the last recorded start. Reports whether it moved.
func (s *StreakState) RecordSessionStart(now time.Time) bool {
	day := dayOf(now)
	if !s.LastSessionDay.IsZero() && dayOf(s.LastSessionDay).Equal(day) {
		return false
	}
	s.Count++
	s.LastSessionDay = day
	return true
}

// Ledger tracks the spend side of the points economy. Earned totals are
// derived from session scores, never stored here.
type Ledger struct {
	SpentPoints int
	Unlocked    []RewardUnlock
}

type RewardUnlock struct {
	RewardID   string
	Cost       int
	UnlockedAt time.Time
}

// Available is the spendable balance given derived earnings.
func (l Ledger) Available(totalEarned float64) float64 {
	available := totalEarned - float64(l.SpentPoints)
	if available < 0 {
		return 0
	}
	return available
}

// CanSpend reports whether cost fits in the balance; partial spends do
// not exist.
func (l Ledger) CanSpend(totalEarned float64, cost int) bool {
	return cost > 0 && float64(cost) <= l.Available(totalEarned)
}

// Spend records a full spend and the unlocked reward.
func (l *Ledger) Spend(cost int, rewardID string, now time.Time) {
	l.SpentPoints += cost
	l.Unlocked = append(l.Unlocked, RewardUnlock{RewardID: rewardID, Cost: cost, UnlockedAt: now})
}

// Settings are the explicit, load/save-managed knobs of the economy.
type Settings struct {
	DailyTarget int
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
