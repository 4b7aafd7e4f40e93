package progression

import (
	"time"

	"github.com/google/uuid"

	"github.com/obma24/Quest-Board/internal/domain"
)

// NextDue computes the due date for the next occurrence of a recurring
// quest. A quest with a due date keeps its time of day (due + 1 day for
// DAILY, + 7 days for WEEKLY); one without is anchored to today at 23:59
// in now's location.
func NextDue(f domain.Frequency, prev *time.Time, now time.Time) time.Time {
	step := f.StepDays()
	if prev != nil {
		return prev.AddDate(0, 0, step)
	}
	base := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
	return base.AddDate(0, 0, step)
}

// Respawn clones a completed DAILY/WEEKLY quest into its next open
// occurrence: same title, description, frequency and rewards, fresh id and
// creation time, completed state reset.
func Respawn(q domain.Quest, now time.Time) domain.Quest {
	due := NextDue(q.Frequency, q.DueAt, now)
	return domain.Quest{
		ID:          uuid.NewString(),
		UserID:      q.UserID,
		Title:       q.Title,
		Description: q.Description,
		Frequency:   q.Frequency,
		DueAt:       &due,
		RewardXP:    q.RewardXP,
		RewardCoins: q.RewardCoins,
		CreatedAt:   now,
	}
}
