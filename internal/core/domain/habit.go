package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty     = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong   = errors.New("habit name is too long (max 100 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrInvalidFrequency   = errors.New("invalid frequency (must be daily, weekly, or custom)")
	ErrInvalidHistoryDays = errors.New("history window must be at least 1 day")
)

const (
	HabitFreqDaily  = "daily"
	HabitFreqWeekly = "weekly"
	HabitFreqCustom = "custom"

	MaxHabitNameLen = 100
)

type Habit struct {
	ID              string     `json:"id" db:"id"`
	UserID          string     `json:"user_id" db:"user_id"`
	Name            string     `json:"name" db:"name"`
	Frequency       string     `json:"frequency" db:"frequency"`
	StreakCount     int        `json:"streak_count" db:"streak_count"`
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty" db:"last_completed_at"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// HabitWithStatus is the dashboard view of a habit: the stored row plus
// today's completion flag and the last seven days as booleans
// (index 0 = today, index 6 = six days ago). Computed, never persisted.
type HabitWithStatus struct {
	Habit
	CompletedToday    bool   `json:"completed_today"`
	WeeklyCompletions []bool `json:"weekly_completions"`
}

func validFrequency(freq string) bool {
	switch freq {
	case HabitFreqDaily, HabitFreqWeekly, HabitFreqCustom:
		return true
	}
	return false
}

func NewHabit(userID, name, frequency string) (*Habit, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrHabitNameEmpty
	}
	if len(trimmed) > MaxHabitNameLen {
		return nil, ErrHabitNameTooLong
	}

	if frequency == "" {
		frequency = HabitFreqDaily
	}
	if !validFrequency(frequency) {
		return nil, ErrInvalidFrequency
	}

	now := time.Now().UTC()

	return &Habit{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      trimmed,
		Frequency: frequency,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (h *Habit) Rename(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrHabitNameEmpty
	}
	if len(trimmed) > MaxHabitNameLen {
		return ErrHabitNameTooLong
	}

	h.Name = trimmed
	h.UpdatedAt = time.Now().UTC()
	return nil
}

func (h *Habit) SetFrequency(frequency string) error {
	if !validFrequency(frequency) {
		return ErrInvalidFrequency
	}

	h.Frequency = frequency
	h.UpdatedAt = time.Now().UTC()
	return nil
}

// DayUTC truncates a timestamp to its UTC calendar day. All streak and
// history arithmetic uses this boundary; local timezones never leak in.
func DayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// NextStreak computes the streak value a completion at `now` would produce.
//
//	same UTC day as the last completion -> streak unchanged (no double credit)
//	last completion was yesterday       -> streak + 1
//	gap of two or more days, or never   -> reset to 1
func NextStreak(streak int, lastCompletedAt *time.Time, now time.Time) int {
	if lastCompletedAt == nil {
		return 1
	}

	today := DayUTC(now)
	lastDay := DayUTC(*lastCompletedAt)

	switch {
	case lastDay.Equal(today):
		return streak
	case lastDay.Equal(today.AddDate(0, 0, -1)):
		return streak + 1
	default:
		return 1
	}
}

// CompletedOn reports whether the habit's last completion falls on the
// given day (UTC).
func (h *Habit) CompletedOn(day time.Time) bool {
	return h.LastCompletedAt != nil && DayUTC(*h.LastCompletedAt).Equal(DayUTC(day))
}

// CompletionHistory builds a window of `days` booleans ending at `now`:
// index 0 is today, index days-1 is days-1 days ago. A slot is true iff
// some completion timestamp truncates to that day. Pure over the provided
// set; fetching completions is the repository's job.
func CompletionHistory(days int, completions []time.Time, now time.Time) ([]bool, error) {
	if days < 1 {
		return nil, ErrInvalidHistoryDays
	}

	completed := make(map[time.Time]bool, len(completions))
	for _, c := range completions {
		completed[DayUTC(c)] = true
	}

	today := DayUTC(now)
	history := make([]bool, days)
	for i := 0; i < days; i++ {
		history[i] = completed[today.AddDate(0, 0, -i)]
	}

	return history, nil
}
