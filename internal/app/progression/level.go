// Package progression implements the pure calculators of the progression
// engine: reward table, leveling, streaks, badges, and recurrence. None of
// these functions perform I/O; the quest lifecycle controller composes them
// and owns all side effects.
package progression

// coinsPerLevel is the bonus paid out for every level gained.
const coinsPerLevel = 50

// XPThreshold returns the XP needed to advance from level to level+1.
// Level 1 is deliberately cheaper than level 2 — the discontinuity is part
// of the tuning, not an accident.
func XPThreshold(level int) int {
	if level <= 1 {
		return 250
	}
	return 600 + level*200
}

// LevelResult is the outcome of folding gained XP into a user's level state.
type LevelResult struct {
	Level        int
	XP           int
	LevelsGained int
	BonusCoins   int
}

// ApplyXP folds gained XP into (level, xp), cascading level-ups until the
// remainder is below the current threshold. Negative gain is clamped to 0.
// The result always satisfies XP < XPThreshold(Level).
func ApplyXP(level, xp, gained int) LevelResult {
	if gained < 0 {
		gained = 0
	}
	remaining := xp + gained
	levels := 0
	for remaining >= XPThreshold(level) {
		remaining -= XPThreshold(level)
		level++
		levels++
	}
	return LevelResult{
		Level:        level,
		XP:           remaining,
		LevelsGained: levels,
		BonusCoins:   levels * coinsPerLevel,
	}
}
