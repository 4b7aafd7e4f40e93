package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. Handlers map them
// to HTTP status codes with errors.Is.

var (
	// Lookup errors
	ErrQuestNotFound = errors.New("quest not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrItemNotFound  = errors.New("shop item not found")

	// Validation errors
	ErrMissingUserID    = errors.New("user id is required")
	ErrMissingQuestID   = errors.New("quest id is required")
	ErrMissingTitle     = errors.New("quest title is required")
	ErrInvalidFrequency = errors.New("frequency must be DAILY, WEEKLY or ONCE")

	// Economy errors
	ErrInsufficientCoins = errors.New("not enough coins")
)
