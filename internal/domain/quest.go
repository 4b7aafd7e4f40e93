// Package domain holds the pure types and sentinel errors of the quest board.
// Nothing in this package performs I/O; infrastructure and application layers
// depend on it, never the other way around.
package domain

import "time"

// Frequency is the recurrence class of a quest.
type Frequency string

const (
	FreqDaily  Frequency = "DAILY"
	FreqWeekly Frequency = "WEEKLY"
	FreqOnce   Frequency = "ONCE"
)

// Valid reports whether f is one of the three known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FreqDaily, FreqWeekly, FreqOnce:
		return true
	}
	return false
}

// Recurs reports whether completing a quest of this frequency spawns
// the next occurrence.
func (f Frequency) Recurs() bool {
	return f == FreqDaily || f == FreqWeekly
}

// StepDays returns the recurrence step in days (0 for ONCE).
func (f Frequency) StepDays() int {
	switch f {
	case FreqDaily:
		return 1
	case FreqWeekly:
		return 7
	}
	return 0
}

// Quest is a single task instance. Recurring quests produce new instances
// when completed; a row is never reused for the next occurrence.
type Quest struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Frequency   Frequency  `json:"frequency"`
	DueAt       *time.Time `json:"due_at,omitempty"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	RewardXP    int        `json:"reward_xp"`
	RewardCoins int        `json:"reward_coins"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Overdue reports whether an open quest's deadline has passed.
func (q Quest) Overdue(now time.Time) bool {
	return !q.Completed && q.DueAt != nil && now.After(*q.DueAt)
}
