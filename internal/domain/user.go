package domain

import "time"

// User is one account's progression state. Created implicitly on the first
// quest creation or login, mutated by every progression event, never deleted.
type User struct {
	ID              string     `json:"id"`
	Level           int        `json:"level"`
	XP              int        `json:"xp"`
	Coins           int        `json:"coins"`
	CompletedQuests int        `json:"completed_quests"`
	DailyStreak     int        `json:"daily_streak"`
	LastStreakAt    *time.Time `json:"last_streak_at,omitempty"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty"`
	EarnedBadges    []string   `json:"earned_badges"`
	SelectedAvatar  string     `json:"selected_avatar,omitempty"`
	SelectedEffect  string     `json:"selected_effect,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// NewUser returns a fresh user with zeroed stats at level 1.
func NewUser(id string, now time.Time) User {
	return User{
		ID:           id,
		Level:        1,
		EarnedBadges: []string{},
		CreatedAt:    now,
	}
}

// HasBadge reports whether the user has earned the given badge.
func (u User) HasBadge(id string) bool {
	for _, b := range u.EarnedBadges {
		if b == id {
			return true
		}
	}
	return false
}
