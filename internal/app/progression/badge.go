package progression

import "github.com/obma24/Quest-Board/internal/domain"

// Badge identifiers. A badge, once earned, is never revoked — a streak
// falling back to 1 does not remove Badge7DayStreak.
const (
	Badge7DayStreak  = "7-day-streak"
	Badge10Quests    = "10-quests"
	BadgeWeeklyQuest = "weekly-quest"
)

// BadgeSnapshot is the slice of user state a badge rule is checked against.
// CompletedQuests is the counter after the event being evaluated.
// CompletedFrequency is the zero value when no quest was completed (login).
type BadgeSnapshot struct {
	Streak             int
	CompletedQuests    int
	CompletedFrequency domain.Frequency
}

// EvalBadges returns earned extended with every badge the snapshot newly
// qualifies for. The input slice is not modified; rules are idempotent and
// the set only ever grows.
func EvalBadges(earned []string, snap BadgeSnapshot) []string {
	out := make([]string, len(earned), len(earned)+3)
	copy(out, earned)

	if snap.Streak >= 7 {
		out = addBadge(out, Badge7DayStreak)
	}
	if snap.CompletedQuests >= 10 {
		out = addBadge(out, Badge10Quests)
	}
	if snap.CompletedFrequency == domain.FreqWeekly {
		out = addBadge(out, BadgeWeeklyQuest)
	}
	return out
}

func addBadge(earned []string, id string) []string {
	for _, b := range earned {
		if b == id {
			return earned
		}
	}
	return append(earned, id)
}
