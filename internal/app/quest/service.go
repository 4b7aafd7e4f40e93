// Package quest implements the quest lifecycle controller: the single
// side-effecting orchestrator that turns lifecycle events (create, complete,
// uncomplete, edit, delete, login) into user progression. All derivation is
// delegated to the pure calculators in app/progression; this package owns
// the repository reads and writes.
package quest

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/obma24/Quest-Board/internal/app/progression"
	"github.com/obma24/Quest-Board/internal/domain"
	"github.com/obma24/Quest-Board/internal/infra/sqlite"
)

// Service orchestrates quest lifecycle operations against the store.
// Progression updates (complete, login) are serialized per user and run
// inside a single transaction, so concurrent events for the same user
// cannot lose derived state.
type Service struct {
	db *sqlite.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex

	subs []func(domain.Event)
}

// NewService creates a quest lifecycle service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db, locks: make(map[string]*sync.Mutex)}
}

// Subscribe registers a callback invoked after each committed mutation.
// Subscribers run synchronously and must not call back into the service.
func (s *Service) Subscribe(fn func(domain.Event)) {
	s.subs = append(s.subs, fn)
}

func (s *Service) emit(e domain.Event) {
	for _, fn := range s.subs {
		fn(e)
	}
}

// lockUser returns the per-user mutex, locked. Entries are never evicted:
// the map grows with the number of distinct user ids seen over the process
// lifetime, one mutex each, which stays negligible for this single-node
// store. Eviction would need a use count to avoid freeing a held lock.
func (s *Service) lockUser(userID string) *sync.Mutex {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l
}

// ─── Create ─────────────────────────────────────────────────────────────────

// Create validates the input, ensures the owning user exists (creating a
// default record if needed), fixes rewards from the reward table, and inserts
// an open quest.
func (s *Service) Create(userID, title, description string, freq domain.Frequency, dueAt *time.Time) (*domain.Quest, error) {
	return s.CreateAt(userID, title, description, freq, dueAt, time.Now())
}

// CreateAt is Create with an explicit clock, for testability.
func (s *Service) CreateAt(userID, title, description string, freq domain.Frequency, dueAt *time.Time, now time.Time) (*domain.Quest, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}
	if title == "" {
		return nil, domain.ErrMissingTitle
	}
	if !freq.Valid() {
		return nil, domain.ErrInvalidFrequency
	}

	if _, err := s.db.EnsureUser(userID, now); err != nil {
		return nil, err
	}

	reward := progression.RewardFor(freq)
	quest := domain.Quest{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Frequency:   freq,
		DueAt:       dueAt,
		RewardXP:    reward.XP,
		RewardCoins: reward.Coins,
		CreatedAt:   now,
	}
	if err := s.db.InsertQuest(quest); err != nil {
		return nil, err
	}

	s.emit(domain.Event{
		Type: domain.EventQuestCreated, UserID: userID, QuestID: quest.ID,
		Frequency: freq, At: now,
	})
	return &quest, nil
}

// ─── Complete ───────────────────────────────────────────────────────────────

// CompleteResult is everything a completion changed.
type CompleteResult struct {
	Quest   domain.Quest  `json:"quest"`
	User    domain.User   `json:"user"`
	Spawned *domain.Quest `json:"spawned,omitempty"`
}

// Complete marks the quest done and applies the full progression update:
// XP/level cascade, coin rewards, completion counter, daily streak, badges,
// and — for DAILY/WEEKLY quests — the next occurrence. Everything except the
// best-effort respawn commits or fails as one unit.
func (s *Service) Complete(questID, userID string) (*CompleteResult, error) {
	return s.CompleteAt(questID, userID, time.Now())
}

// CompleteAt is Complete with an explicit clock, for testability.
func (s *Service) CompleteAt(questID, userID string, now time.Time) (*CompleteResult, error) {
	if questID == "" {
		return nil, domain.ErrMissingQuestID
	}
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}

	lock := s.lockUser(userID)
	defer lock.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	quest, err := tx.GetQuest(questID)
	if err != nil {
		return nil, err
	}
	if quest == nil {
		return nil, domain.ErrQuestNotFound
	}

	quest.Completed = true
	quest.CompletedAt = &now
	if err := tx.UpdateQuest(*quest); err != nil {
		return nil, err
	}

	user, err := tx.EnsureUser(userID, now)
	if err != nil {
		return nil, err
	}

	leveled := progression.ApplyXP(user.Level, user.XP, quest.RewardXP)
	user.Level = leveled.Level
	user.XP = leveled.XP
	user.Coins += quest.RewardCoins + leveled.BonusCoins
	user.CompletedQuests++

	user.DailyStreak = progression.NextStreak(user.DailyStreak, user.LastStreakAt, now)
	user.LastStreakAt = &now
	user.LastCompletedAt = &now

	prevBadges := len(user.EarnedBadges)
	user.EarnedBadges = progression.EvalBadges(user.EarnedBadges, progression.BadgeSnapshot{
		Streak:             user.DailyStreak,
		CompletedQuests:    user.CompletedQuests,
		CompletedFrequency: quest.Frequency,
	})

	if err := tx.SaveUser(*user); err != nil {
		return nil, err
	}

	// The respawn is best-effort: a failure here must not take the
	// completion down with it.
	var spawned *domain.Quest
	if quest.Frequency.Recurs() {
		next := progression.Respawn(*quest, now)
		if err := tx.InsertQuest(next); err != nil {
			log.Printf("[quest] respawn of %s failed: %v", quest.ID, err)
		} else {
			spawned = &next
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.emit(domain.Event{
		Type: domain.EventQuestCompleted, UserID: userID, QuestID: quest.ID,
		Frequency: quest.Frequency, Streak: user.DailyStreak,
		Coins: quest.RewardCoins + leveled.BonusCoins, At: now,
	})
	if leveled.LevelsGained > 0 {
		s.emit(domain.Event{
			Type: domain.EventLevelUp, UserID: userID,
			Level: user.Level, LevelsGained: leveled.LevelsGained, At: now,
		})
	}
	for _, badge := range user.EarnedBadges[prevBadges:] {
		s.emit(domain.Event{
			Type: domain.EventBadgeEarned, UserID: userID, Badge: badge, At: now,
		})
	}
	if spawned != nil {
		s.emit(domain.Event{
			Type: domain.EventQuestRespawned, UserID: userID, QuestID: spawned.ID,
			Frequency: spawned.Frequency, At: now,
		})
	}

	return &CompleteResult{Quest: *quest, User: *user, Spawned: spawned}, nil
}

// ─── Uncomplete ─────────────────────────────────────────────────────────────

// Uncomplete reopens a completed quest. XP, coins, the completion counter and
// badges granted at completion time are deliberately NOT reversed; repeated
// complete/uncomplete cycles therefore re-grant rewards. Accepted exploit.
func (s *Service) Uncomplete(questID string) (*domain.Quest, error) {
	if questID == "" {
		return nil, domain.ErrMissingQuestID
	}

	quest, err := s.db.GetQuest(questID)
	if err != nil {
		return nil, err
	}
	if quest == nil {
		return nil, domain.ErrQuestNotFound
	}

	quest.Completed = false
	quest.CompletedAt = nil
	if err := s.db.UpdateQuest(*quest); err != nil {
		return nil, err
	}

	s.emit(domain.Event{
		Type: domain.EventQuestUncompleted, UserID: quest.UserID, QuestID: quest.ID,
		Frequency: quest.Frequency, At: time.Now(),
	})
	return quest, nil
}

// ─── Edit ───────────────────────────────────────────────────────────────────

// EditPatch carries the fields an edit may change. Nil pointers leave the
// field untouched. Rewards are never recomputed, even on a frequency change.
type EditPatch struct {
	Title       *string
	Description *string
	Frequency   *domain.Frequency
	DueAt       *time.Time
	ClearDueAt  bool
}

// Edit applies a partial update to an open or completed quest.
func (s *Service) Edit(questID string, patch EditPatch) (*domain.Quest, error) {
	if questID == "" {
		return nil, domain.ErrMissingQuestID
	}

	quest, err := s.db.GetQuest(questID)
	if err != nil {
		return nil, err
	}
	if quest == nil {
		return nil, domain.ErrQuestNotFound
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, domain.ErrMissingTitle
		}
		quest.Title = *patch.Title
	}
	if patch.Description != nil {
		quest.Description = *patch.Description
	}
	if patch.Frequency != nil {
		if !patch.Frequency.Valid() {
			return nil, domain.ErrInvalidFrequency
		}
		quest.Frequency = *patch.Frequency
	}
	if patch.ClearDueAt {
		quest.DueAt = nil
	} else if patch.DueAt != nil {
		quest.DueAt = patch.DueAt
	}

	if err := s.db.UpdateQuest(*quest); err != nil {
		return nil, err
	}
	return quest, nil
}

// ─── Delete ─────────────────────────────────────────────────────────────────

// Delete removes a quest. User aggregates are untouched: rewards already
// granted for a completed quest stay granted.
func (s *Service) Delete(questID string) error {
	if questID == "" {
		return domain.ErrMissingQuestID
	}
	return s.db.DeleteQuest(questID)
}

// ─── Login ──────────────────────────────────────────────────────────────────

// RecordLogin drives the streak and badge machinery from a login alone; the
// 7-day-streak badge can be earned without ever completing a quest.
func (s *Service) RecordLogin(userID string) (*domain.User, error) {
	return s.RecordLoginAt(userID, time.Now())
}

// RecordLoginAt is RecordLogin with an explicit clock, for testability.
func (s *Service) RecordLoginAt(userID string, now time.Time) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}

	lock := s.lockUser(userID)
	defer lock.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	user, err := tx.EnsureUser(userID, now)
	if err != nil {
		return nil, err
	}

	user.DailyStreak = progression.NextStreak(user.DailyStreak, user.LastStreakAt, now)
	user.LastStreakAt = &now
	user.LastLoginAt = &now

	prevBadges := len(user.EarnedBadges)
	user.EarnedBadges = progression.EvalBadges(user.EarnedBadges, progression.BadgeSnapshot{
		Streak:          user.DailyStreak,
		CompletedQuests: user.CompletedQuests,
	})

	if err := tx.SaveUser(*user); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.emit(domain.Event{
		Type: domain.EventLogin, UserID: userID, Streak: user.DailyStreak, At: now,
	})
	for _, badge := range user.EarnedBadges[prevBadges:] {
		s.emit(domain.Event{
			Type: domain.EventBadgeEarned, UserID: userID, Badge: badge, At: now,
		})
	}
	return user, nil
}

// ─── Reads ──────────────────────────────────────────────────────────────────

// List returns the user's quests, newest first.
func (s *Service) List(userID string) ([]domain.Quest, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}
	return s.db.ListQuests(userID)
}

// Get returns a single quest.
func (s *Service) Get(questID string) (*domain.Quest, error) {
	if questID == "" {
		return nil, domain.ErrMissingQuestID
	}
	quest, err := s.db.GetQuest(questID)
	if err != nil {
		return nil, err
	}
	if quest == nil {
		return nil, domain.ErrQuestNotFound
	}
	return quest, nil
}

// Profile returns the user's progression snapshot.
func (s *Service) Profile(userID string) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}
	user, err := s.db.GetUser(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}
