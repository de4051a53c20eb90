package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAllocationCategoryEmpty = errors.New("allocation category cannot be empty")
	ErrNegativeMinutes         = errors.New("allocation minutes cannot be negative")
	ErrAllocationNotFound      = errors.New("time allocation not found")
)

// TimeAllocation is a weekly planned-vs-actual bucket per category,
// upserted on (user_id, category, week_start).
type TimeAllocation struct {
	ID       string `json:"id" db:"id"`
	UserID   string `json:"user_id" db:"user_id"`
	Category string `json:"category" db:"category"`

	PlannedMinutes int       `json:"planned_minutes" db:"planned_minutes"`
	ActualMinutes  int       `json:"actual_minutes" db:"actual_minutes"`
	WeekStart      time.Time `json:"week_start" db:"week_start"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// WeekStartUTC returns the Monday 00:00 UTC of the week containing t.
func WeekStartUTC(t time.Time) time.Time {
	day := DayUTC(t)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

func NewTimeAllocation(userID, category string, plannedMinutes, actualMinutes int, week time.Time) (*TimeAllocation, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}

	trimmed := strings.TrimSpace(category)
	if trimmed == "" {
		return nil, ErrAllocationCategoryEmpty
	}
	if plannedMinutes < 0 || actualMinutes < 0 {
		return nil, ErrNegativeMinutes
	}

	now := time.Now().UTC()

	return &TimeAllocation{
		ID:             uuid.NewString(),
		UserID:         userID,
		Category:       trimmed,
		PlannedMinutes: plannedMinutes,
		ActualMinutes:  actualMinutes,
		WeekStart:      WeekStartUTC(week),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}
