package domain

import (
	"context"
	"errors"
	"time"
)

// ErrUnauthorized signals an ownership check failure: the entity exists but
// belongs to another user. Handlers map it to 404 to avoid leaking ids.
var ErrUnauthorized = errors.New("entity does not belong to user")

// TaskFilter narrows task listings. Zero value means no filtering.
type TaskFilter struct {
	ProjectID *string
	Completed *bool
}

type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	ListByUserID(ctx context.Context, userID string, filter TaskFilter) ([]*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id string) error

	// CountCompletedSince counts the user's tasks completed at or after
	// `since`. Feeds the productivity score.
	CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, project *Project) error
	GetByID(ctx context.Context, id string) (*Project, error)
	ListByUserID(ctx context.Context, userID string) ([]*Project, error)
	Update(ctx context.Context, project *Project) error
	Delete(ctx context.Context, id string) error
}

type NoteRepository interface {
	Create(ctx context.Context, note *Note) error
	GetByID(ctx context.Context, id string) (*Note, error)
	ListByUserID(ctx context.Context, userID string) ([]*Note, error)
	Update(ctx context.Context, note *Note) error
	Delete(ctx context.Context, id string) error
}

type ReadingRepository interface {
	Create(ctx context.Context, item *ReadingItem) error
	GetByID(ctx context.Context, id string) (*ReadingItem, error)
	ListByUserID(ctx context.Context, userID string) ([]*ReadingItem, error)
	Update(ctx context.Context, item *ReadingItem) error
	Delete(ctx context.Context, id string) error
}

type FocusSessionRepository interface {
	Create(ctx context.Context, session *FocusSession) error
	ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*FocusSession, error)
	Delete(ctx context.Context, id string, userID string) error

	// MinutesSince sums focus minutes for sessions started at or after
	// `since`.
	MinutesSince(ctx context.Context, userID string, since time.Time) (int, error)
}

type VitalityLogRepository interface {
	// Upsert writes the log for its (user_id, log_date) day, replacing any
	// existing row for that day.
	Upsert(ctx context.Context, log *VitalityLog) error
	GetByDate(ctx context.Context, userID string, day time.Time) (*VitalityLog, error)
	ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*VitalityLog, error)

	// AvgEnergySince averages the energy rating over logs dated at or after
	// `since`; zero when no logs exist.
	AvgEnergySince(ctx context.Context, userID string, since time.Time) (float64, error)
}

type TimeAllocationRepository interface {
	// Upsert writes the allocation for its (user_id, category, week_start)
	// bucket.
	Upsert(ctx context.Context, alloc *TimeAllocation) error
	ListByWeek(ctx context.Context, userID string, weekStart time.Time) ([]*TimeAllocation, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
}
