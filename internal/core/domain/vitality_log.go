package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEnergy     = errors.New("energy must be between 1 and 10")
	ErrInvalidSleepHours = errors.New("sleep hours must be between 0 and 24")
	ErrVitalityNotFound  = errors.New("vitality log not found")
)

// VitalityLog is one per user per UTC calendar day; writes are upserts
// keyed on (user_id, log_date).
type VitalityLog struct {
	ID      string    `json:"id" db:"id"`
	UserID  string    `json:"user_id" db:"user_id"`
	LogDate time.Time `json:"log_date" db:"log_date"`

	Energy     int     `json:"energy" db:"energy"`
	SleepHours float64 `json:"sleep_hours" db:"sleep_hours"`
	Mood       string  `json:"mood" db:"mood"`
	Note       string  `json:"note" db:"note"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewVitalityLog(userID string, logDate time.Time, energy int, sleepHours float64, mood, note string) (*VitalityLog, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}
	if energy < 1 || energy > 10 {
		return nil, ErrInvalidEnergy
	}
	if sleepHours < 0 || sleepHours > 24 {
		return nil, ErrInvalidSleepHours
	}

	now := time.Now().UTC()

	return &VitalityLog{
		ID:         uuid.NewString(),
		UserID:     userID,
		LogDate:    DayUTC(logDate),
		Energy:     energy,
		SleepHours: sleepHours,
		Mood:       strings.TrimSpace(mood),
		Note:       strings.TrimSpace(note),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}
