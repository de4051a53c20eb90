package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidCompletion  = errors.New("invalid habit completion data")
	ErrCompletionNotFound = errors.New("habit completion not found")
)

// HabitCompletion is one entry in the append-only completion log. At most
// one logical completion exists per habit per UTC calendar day; the unique
// index on (habit_id, completed_on) enforces it.
type HabitCompletion struct {
	ID      string `json:"id" db:"id"`
	HabitID string `json:"habit_id" db:"habit_id"`
	UserID  string `json:"user_id" db:"user_id"`

	CompletedAt time.Time `json:"completed_at" db:"completed_at"`
	Notes       string    `json:"notes" db:"notes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func NewHabitCompletion(habitID, userID string, completedAt time.Time, notes string) *HabitCompletion {
	now := time.Now().UTC()

	return &HabitCompletion{
		HabitID:     habitID,
		UserID:      userID,
		CompletedAt: completedAt.UTC(),
		Notes:       notes,
		CreatedAt:   now,
	}
}

func (c *HabitCompletion) Validate() error {
	if strings.TrimSpace(c.HabitID) == "" {
		return errors.New("habit_id is required")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return errors.New("user_id is required")
	}
	if c.CompletedAt.IsZero() {
		return errors.New("completed_at is required")
	}
	return nil
}
