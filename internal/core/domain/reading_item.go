package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrReadingTitleEmpty    = errors.New("reading item title cannot be empty")
	ErrInvalidReadingStatus = errors.New("invalid reading status (must be queued, reading, or finished)")
	ErrReadingNotFound      = errors.New("reading item not found")
)

const (
	ReadingQueued   = "queued"
	ReadingActive   = "reading"
	ReadingFinished = "finished"
)

type ReadingItem struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"user_id" db:"user_id"`
	Title  string `json:"title" db:"title"`
	Author string `json:"author" db:"author"`
	URL    string `json:"url" db:"url"`
	Status string `json:"status" db:"status"`

	FinishedAt *time.Time `json:"finished_at,omitempty" db:"finished_at"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewReadingItem(userID, title, author, url string) (*ReadingItem, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}

	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return nil, ErrReadingTitleEmpty
	}

	now := time.Now().UTC()

	return &ReadingItem{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     trimmed,
		Author:    strings.TrimSpace(author),
		URL:       strings.TrimSpace(url),
		Status:    ReadingQueued,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetStatus moves the item through its lifecycle. Entering "finished"
// stamps FinishedAt; leaving it clears the stamp.
func (r *ReadingItem) SetStatus(status string) error {
	switch status {
	case ReadingQueued, ReadingActive, ReadingFinished:
	default:
		return ErrInvalidReadingStatus
	}

	now := time.Now().UTC()

	if status == ReadingFinished && r.Status != ReadingFinished {
		r.FinishedAt = &now
	} else if status != ReadingFinished {
		r.FinishedAt = nil
	}

	r.Status = status
	r.UpdatedAt = now
	return nil
}
