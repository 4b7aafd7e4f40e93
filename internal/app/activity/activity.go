// Package activity derives the 7-day activity summary shown on the
// dashboard: per local calendar day, how many quests were completed and
// whether the user logged in.
package activity

import (
	"time"

	"github.com/obma24/Quest-Board/internal/domain"
	"github.com/obma24/Quest-Board/internal/infra/sqlite"
)

// DaySummary is one calendar day of activity.
type DaySummary struct {
	Date      string `json:"date"` // YYYY-MM-DD, local
	Completed int    `json:"completed"`
	LoggedIn  bool   `json:"logged_in"`
}

// Service computes activity summaries from the quest and user records.
type Service struct {
	db *sqlite.DB
}

// NewService creates an activity service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// LastWeek returns the trailing 7 local calendar days (oldest first, today
// last). Days before the user existed report zero activity; an unknown user
// gets an all-zero week rather than an error.
func (s *Service) LastWeek(userID string, now time.Time) ([]DaySummary, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}

	quests, err := s.db.ListQuests(userID)
	if err != nil {
		return nil, err
	}
	user, err := s.db.GetUser(userID)
	if err != nil {
		return nil, err
	}

	loc := now.Location()
	start := dayStart(now, loc).AddDate(0, 0, -6)

	days := make([]DaySummary, 7)
	for i := range days {
		days[i].Date = start.AddDate(0, 0, i).Format("2006-01-02")
	}

	for _, q := range quests {
		if q.CompletedAt == nil {
			continue
		}
		if i, ok := dayIndex(start, *q.CompletedAt, loc); ok {
			days[i].Completed++
		}
	}
	if user != nil && user.LastLoginAt != nil {
		if i, ok := dayIndex(start, *user.LastLoginAt, loc); ok {
			days[i].LoggedIn = true
		}
	}
	return days, nil
}

func dayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// dayIndex buckets t into the window by calendar-day equality. Subtracting
// midnights and dividing by 24h miscounts across DST transitions, where a
// local day is 23 or 25 hours.
func dayIndex(start, t time.Time, loc *time.Location) (int, bool) {
	ty, tm, td := t.In(loc).Date()
	for i := 0; i < 7; i++ {
		y, m, d := start.AddDate(0, 0, i).Date()
		if ty == y && tm == m && td == d {
			return i, true
		}
	}
	return 0, false
}
