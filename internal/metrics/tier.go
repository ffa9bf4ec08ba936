package metrics

// Tier buckets a day's total score for calendar-style rendering. The
// mapping is a monotonic step function: every score lands in exactly
// one tier, and a higher score never lands in a lower tier.
type Tier int

const (
	TierNone Tier = iota
	TierVeryLow
	TierLow
	TierMedium
	TierHigh
	TierVeryHigh
)

func (t Tier) String() string {
	switch t {
	case TierNone:
		return "none"
	case TierVeryLow:
		return "very low"
	case TierLow:
		return "low"
	case TierMedium:
		return "medium"
	case TierHigh:
		return "high"
	case TierVeryHigh:
		return "very high"
	}
	return "unknown"
}

// TierFor maps a total score to its tier. Days with no activity at all
// are TierNone regardless of score (vitality-only days included), so a
// calendar can distinguish "nothing logged" from "logged and scored 0".
func TierFor(totalScore float64, hasActivity bool) Tier {
	if !hasActivity {
		return TierNone
	}
	switch {
	case totalScore < 0:
		return TierVeryLow
	case totalScore < 5:
		return TierLow
	case totalScore < 15:
		return TierMedium
	case totalScore < 30:
		return TierHigh
	default:
		return TierVeryHigh
	}
}

// TierForDay buckets a computed day.
func TierForDay(m DailyMetrics) Tier {
	return TierFor(m.TotalScore, m.ActivityCount > 0)
}
