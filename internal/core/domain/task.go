package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTaskTitleEmpty   = errors.New("task title cannot be empty")
	ErrTaskTitleTooLong = errors.New("task title is too long (max 200 chars)")
	ErrInvalidPriority  = errors.New("invalid priority (must be low, medium, or high)")
	ErrTaskNotFound     = errors.New("task not found")
	ErrTaskConflict     = errors.New("task version conflict")
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	MaxTaskTitleLen = 200
)

type Task struct {
	ID        string  `json:"id" db:"id"`
	UserID    string  `json:"user_id" db:"user_id"`
	ProjectID *string `json:"project_id,omitempty" db:"project_id"`
	Title     string  `json:"title" db:"title"`
	Notes     string  `json:"notes" db:"notes"`
	Priority  string  `json:"priority" db:"priority"`

	DueDate     *time.Time `json:"due_date,omitempty" db:"due_date"`
	CompletedAt *time.Time `json:"completed_at,omitempty" db:"completed_at"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func validPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

func NewTask(userID, title string) (*Task, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, ErrTaskTitleEmpty
	}
	if len(trimmed) > MaxTaskTitleLen {
		return nil, ErrTaskTitleTooLong
	}

	now := time.Now().UTC()

	return &Task{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     trimmed,
		Priority:  PriorityMedium,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (t *Task) SetPriority(p string) error {
	if !validPriority(p) {
		return ErrInvalidPriority
	}
	t.Priority = p
	t.UpdatedAt = time.Now().UTC()
	return nil
}

func (t *Task) Retitle(title string) error {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return ErrTaskTitleEmpty
	}
	if len(trimmed) > MaxTaskTitleLen {
		return ErrTaskTitleTooLong
	}
	t.Title = trimmed
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// Complete marks the task done. Re-completing keeps the first timestamp.
func (t *Task) Complete(now time.Time) {
	if t.CompletedAt != nil {
		return
	}
	u := now.UTC()
	t.CompletedAt = &u
	t.UpdatedAt = u
}

func (t *Task) Reopen() {
	if t.CompletedAt == nil {
		return
	}
	t.CompletedAt = nil
	t.UpdatedAt = time.Now().UTC()
}

func (t *Task) IsCompleted() bool {
	return t.CompletedAt != nil
}
