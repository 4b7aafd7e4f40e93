package domain

import "time"

// EventType categorizes progression events emitted by the lifecycle controller.
type EventType string

const (
	EventQuestCreated     EventType = "quest_created"
	EventQuestCompleted   EventType = "quest_completed"
	EventQuestUncompleted EventType = "quest_uncompleted"
	EventQuestRespawned   EventType = "quest_respawned"
	EventLevelUp          EventType = "level_up"
	EventBadgeEarned      EventType = "badge_earned"
	EventLogin            EventType = "login"
)

// Event is a notification emitted after a mutation has been committed.
// Subscribers (UI refresh, metrics) must not feed back into progression state.
type Event struct {
	Type         EventType `json:"type"`
	UserID       string    `json:"user_id"`
	QuestID      string    `json:"quest_id,omitempty"`
	Frequency    Frequency `json:"frequency,omitempty"`
	Level        int       `json:"level,omitempty"`
	LevelsGained int       `json:"levels_gained,omitempty"`
	Streak       int       `json:"streak,omitempty"`
	Badge        string    `json:"badge,omitempty"`
	Coins        int       `json:"coins,omitempty"`
	At           time.Time `json:"at"`
}
