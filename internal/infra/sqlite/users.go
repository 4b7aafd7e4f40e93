package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/obma24/Quest-Board/internal/domain"
)

const userColumns = `id, level, xp, coins, completed_quests, daily_streak,
	last_streak_at, last_login_at, last_completed_at,
	earned_badges, selected_avatar, selected_effect, created_at`

// GetUser retrieves a user by id. Returns (nil, nil) when not found.
func (q queries) GetUser(id string) (*domain.User, error) {
	row := q.q.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return scanUser(row)
}

// EnsureUser returns the user with the given id, creating a default record
// with zeroed stats at level 1 if none exists (create-or-get upsert).
func (q queries) EnsureUser(id string, now time.Time) (*domain.User, error) {
	fresh := domain.NewUser(id, now)
	_, err := q.q.Exec(
		`INSERT OR IGNORE INTO users (id, level, earned_badges, created_at)
		 VALUES (?, ?, '[]', ?)`,
		fresh.ID, fresh.Level, fresh.CreatedAt.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("ensure user: %w", err)
	}
	return q.GetUser(id)
}

// SaveUser writes the full user record back. Returns domain.ErrUserNotFound
// if the row does not exist.
func (q queries) SaveUser(u domain.User) error {
	badges, err := json.Marshal(u.EarnedBadges)
	if err != nil {
		return fmt.Errorf("marshal badges: %w", err)
	}
	result, err := q.q.Exec(
		`UPDATE users SET level=?, xp=?, coins=?, completed_quests=?, daily_streak=?,
			last_streak_at=?, last_login_at=?, last_completed_at=?,
			earned_badges=?, selected_avatar=?, selected_effect=?
		 WHERE id=?`,
		u.Level, u.XP, u.Coins, u.CompletedQuests, u.DailyStreak,
		nullableUnix(u.LastStreakAt), nullableUnix(u.LastLoginAt), nullableUnix(u.LastCompletedAt),
		string(badges), u.SelectedAvatar, u.SelectedEffect,
		u.ID,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(s scanner) (*domain.User, error) {
	var u domain.User
	var streakAt, loginAt, completedAt sql.NullInt64
	var badges string
	var createdAt int64

	err := s.Scan(&u.ID, &u.Level, &u.XP, &u.Coins, &u.CompletedQuests, &u.DailyStreak,
		&streakAt, &loginAt, &completedAt,
		&badges, &u.SelectedAvatar, &u.SelectedEffect, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil // Not found, no error
	}
	if err != nil {
		return nil, err
	}

	u.LastStreakAt = unixPtr(streakAt)
	u.LastLoginAt = unixPtr(loginAt)
	u.LastCompletedAt = unixPtr(completedAt)
	u.CreatedAt = time.Unix(createdAt, 0)
	if err := json.Unmarshal([]byte(badges), &u.EarnedBadges); err != nil {
		return nil, fmt.Errorf("unmarshal badges: %w", err)
	}
	if u.EarnedBadges == nil {
		u.EarnedBadges = []string{}
	}
	return &u, nil
}
