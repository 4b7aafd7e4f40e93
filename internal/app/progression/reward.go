package progression

import "github.com/obma24/Quest-Board/internal/domain"

// Reward is the XP/coin payout fixed on a quest at creation time. It is
// never recomputed, even if the quest's frequency is edited later.
type Reward struct {
	XP    int `json:"xp"`
	Coins int `json:"coins"`
}

// RewardFor maps a quest frequency to its creation-time reward. The function
// is total: unknown values fall back to the daily reward.
func RewardFor(f domain.Frequency) Reward {
	switch f {
	case domain.FreqWeekly:
		return Reward{XP: 120, Coins: 12}
	case domain.FreqOnce:
		return Reward{XP: 80, Coins: 8}
	default:
		return Reward{XP: 50, Coins: 5}
	}
}
