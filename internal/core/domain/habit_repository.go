package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrHabitConflict = errors.New("habit version conflict")
)

type HabitRepository interface {
	// Create persists a new habit definition.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves an active (non-deleted) habit by its identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves all active habits owned by a user.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Update modifies an existing habit. Implementations must check the
	// version column and return ErrHabitConflict on a stale write.
	Update(ctx context.Context, habit *Habit) error

	// Delete soft-deletes a habit.
	Delete(ctx context.Context, id string) error

	// Complete records a completion at `now` and advances the streak in a
	// single transaction. Implementations must re-read the row under a lock
	// and recompute the streak from the fresh values (NextStreak), never
	// from a caller-supplied copy; a repeat completion on the same UTC day
	// is a no-op that returns the current row.
	Complete(ctx context.Context, habitID, userID string, now time.Time, notes string) (*Habit, error)
}

type CompletionRepository interface {
	// ListDates returns the completion timestamps for a habit on or after
	// `since`, newest first.
	ListDates(ctx context.Context, habitID string, since time.Time) ([]time.Time, error)
}
