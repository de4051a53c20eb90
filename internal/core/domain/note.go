package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNoteBodyEmpty = errors.New("note body cannot be empty")
	ErrNoteNotFound  = errors.New("note not found")
)

type Note struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"user_id" db:"user_id"`
	Body   string `json:"body" db:"body"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewNote(userID, body string) (*Note, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}

	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return nil, ErrNoteBodyEmpty
	}

	now := time.Now().UTC()

	return &Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Body:      trimmed,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (n *Note) Rewrite(body string) error {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return ErrNoteBodyEmpty
	}
	n.Body = trimmed
	n.UpdatedAt = time.Now().UTC()
	return nil
}
