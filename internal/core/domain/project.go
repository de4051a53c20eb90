package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrProjectNameEmpty     = errors.New("project name cannot be empty")
	ErrInvalidProjectStatus = errors.New("invalid project status (must be active, paused, or done)")
	ErrProjectNotFound      = errors.New("project not found")
)

const (
	ProjectActive = "active"
	ProjectPaused = "paused"
	ProjectDone   = "done"
)

type Project struct {
	ID          string `json:"id" db:"id"`
	UserID      string `json:"user_id" db:"user_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Status      string `json:"status" db:"status"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewProject(userID, name, description string) (*Project, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}

	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, ErrProjectNameEmpty
	}

	now := time.Now().UTC()

	return &Project{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        trimmed,
		Description: strings.TrimSpace(description),
		Status:      ProjectActive,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (p *Project) SetStatus(status string) error {
	switch status {
	case ProjectActive, ProjectPaused, ProjectDone:
	default:
		return ErrInvalidProjectStatus
	}

	p.Status = status
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (p *Project) Rename(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrProjectNameEmpty
	}
	p.Name = trimmed
	p.UpdatedAt = time.Now().UTC()
	return nil
}
