package sqlite

import (
	"database/sql"
	"time"

	"github.com/obma24/Quest-Board/internal/domain"
)

const questColumns = `id, user_id, title, description, frequency, due_at,
	completed, completed_at, reward_xp, reward_coins, created_at`

// InsertQuest creates a new quest row.
func (q queries) InsertQuest(quest domain.Quest) error {
	_, err := q.q.Exec(
		`INSERT INTO quests (`+questColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		quest.ID, quest.UserID, quest.Title, quest.Description, string(quest.Frequency),
		nullableUnix(quest.DueAt), quest.Completed, nullableUnix(quest.CompletedAt),
		quest.RewardXP, quest.RewardCoins, quest.CreatedAt.Unix(),
	)
	return err
}

// GetQuest retrieves a quest by id. Returns (nil, nil) when not found.
func (q queries) GetQuest(id string) (*domain.Quest, error) {
	row := q.q.QueryRow(`SELECT `+questColumns+` FROM quests WHERE id = ?`, id)
	return scanQuest(row)
}

// ListQuests returns all quests for a user, newest first.
func (q queries) ListQuests(userID string) ([]domain.Quest, error) {
	rows, err := q.q.Query(
		`SELECT `+questColumns+` FROM quests WHERE user_id = ? ORDER BY created_at DESC, id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var quests []domain.Quest
	for rows.Next() {
		quest, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		quests = append(quests, *quest)
	}
	return quests, rows.Err()
}

// UpdateQuest writes the full quest record back. Returns domain.ErrQuestNotFound
// if the row does not exist.
func (q queries) UpdateQuest(quest domain.Quest) error {
	result, err := q.q.Exec(
		`UPDATE quests SET title=?, description=?, frequency=?, due_at=?,
			completed=?, completed_at=?, reward_xp=?, reward_coins=?
		 WHERE id=?`,
		quest.Title, quest.Description, string(quest.Frequency), nullableUnix(quest.DueAt),
		quest.Completed, nullableUnix(quest.CompletedAt),
		quest.RewardXP, quest.RewardCoins,
		quest.ID,
	)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrQuestNotFound
	}
	return nil
}

// DeleteQuest removes a quest row.
func (q queries) DeleteQuest(id string) error {
	result, err := q.q.Exec(`DELETE FROM quests WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrQuestNotFound
	}
	return nil
}

func scanQuest(s scanner) (*domain.Quest, error) {
	var quest domain.Quest
	var freq string
	var dueAt, completedAt sql.NullInt64
	var createdAt int64

	err := s.Scan(&quest.ID, &quest.UserID, &quest.Title, &quest.Description, &freq,
		&dueAt, &quest.Completed, &completedAt,
		&quest.RewardXP, &quest.RewardCoins, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	quest.Frequency = domain.Frequency(freq)
	quest.DueAt = unixPtr(dueAt)
	quest.CompletedAt = unixPtr(completedAt)
	quest.CreatedAt = time.Unix(createdAt, 0)
	return &quest, nil
}
