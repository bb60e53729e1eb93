package domain

import "time"

// GoldenCooldownDays is how long a passed ceremony locks the golden
// tier when the daily quota is already met.
const GoldenCooldownDays = 3

// GoldenEligible is the deterministic gate for the golden tier. A user
// with no prior pass is always eligible; otherwise the cooldown must
// have elapsed or today's quota must still have room.
func GoldenEligible(lastPassedAt time.Time, hasPassed bool, now time.Time, completedToday, dailyTarget int) bool {
	if !hasPassed {
		return true
	}
	return DaysSince(lastPassedAt, now) >= GoldenCooldownDays || completedToday < dailyTarget
}

// DaysSince counts whole 24h periods between then and now.
func DaysSince(then, now time.Time) int {
	if now.Before(then) {
		return 0
	}
	return int(now.Sub(then).Hours() / 24)
}
