package domain

// Bonus multipliers per tier and verdict. A failed ceremony pays strictly
// less than a pass at the same tier; golden pays strictly more than blue
// on a pass.
const (
	blueBonusPassed   = 1.5
	blueBonusFailed   = 1.0
	goldenBonusPassed = 2.0
	goldenBonusFailed = 1.25
)

// Compute maps (base points, tier, verdict) to (total points, bonus
// multiplier). Pure: no state, no I/O.
func Compute(basePoints int, tier Tier, passed bool) (total float64, multiplier float64) {
	if basePoints <= 0 {
		return 0, 1
	}
	if tier == TierNone {
		return float64(basePoints), 1
	}
	bonus := bonusFor(tier, passed)
	total = float64(basePoints) * bonus
	return total, total / float64(basePoints)
}

func bonusFor(tier Tier, passed bool) float64 {
	switch tier {
	case TierGolden:
		if passed {
			return goldenBonusPassed
		}
		return goldenBonusFailed
	case TierBlue:
		if passed {
			return blueBonusPassed
		}
		return blueBonusFailed
	default:
		return 1
	}
}
