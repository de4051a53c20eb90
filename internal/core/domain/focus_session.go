package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDuration  = errors.New("focus session duration must be positive")
	ErrDurationTooLong  = errors.New("focus session duration exceeds 24 hours")
	ErrFocusNotFound    = errors.New("focus session not found")
	ErrFocusFutureStart = errors.New("focus session cannot start in the future")
)

const MaxFocusMinutes = 24 * 60

type FocusSession struct {
	ID     string  `json:"id" db:"id"`
	UserID string  `json:"user_id" db:"user_id"`
	TaskID *string `json:"task_id,omitempty" db:"task_id"`

	StartedAt       time.Time `json:"started_at" db:"started_at"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
	Label           string    `json:"label" db:"label"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func NewFocusSession(userID string, startedAt time.Time, durationMinutes int, label string) (*FocusSession, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if durationMinutes > MaxFocusMinutes {
		return nil, ErrDurationTooLong
	}
	if startedAt.After(time.Now().UTC().Add(time.Minute)) {
		return nil, ErrFocusFutureStart
	}

	return &FocusSession{
		ID:              uuid.NewString(),
		UserID:          userID,
		StartedAt:       startedAt.UTC(),
		DurationMinutes: durationMinutes,
		Label:           strings.TrimSpace(label),
		CreatedAt:       time.Now().UTC(),
	}, nil
}
