package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
)

var ErrCaptureEmpty = errors.New("capture content is empty")

// CaptureService turns free-text quick-capture input into the entity its
// prefix asks for. Classification itself is pure (domain.ClassifyCapture);
// this service owns only the dispatch to the right repository.
type CaptureService struct {
	tasks    domain.TaskRepository
	notes    domain.NoteRepository
	reading  domain.ReadingRepository
	projects domain.ProjectRepository
}

func NewCaptureService(
	tasks domain.TaskRepository,
	notes domain.NoteRepository,
	reading domain.ReadingRepository,
	projects domain.ProjectRepository,
) *CaptureService {
	return &CaptureService{
		tasks:    tasks,
		notes:    notes,
		reading:  reading,
		projects: projects,
	}
}

// CaptureResult reports what a submitted capture became.
type CaptureResult struct {
	Type    domain.CaptureType `json:"type"`
	ID      string             `json:"id"`
	Content string             `json:"content"`
}

// Preview classifies without writing anything.
func (s *CaptureService) Preview(raw string) domain.ClassifiedCapture {
	return domain.ClassifyCapture(raw)
}

// Submit classifies the input and persists the matching entity. A generic
// capture (no recognized prefix) lands in the task inbox. Empty cleaned
// content is rejected here; the classifier itself never fails.
func (s *CaptureService) Submit(ctx context.Context, userID, raw string) (*CaptureResult, error) {
	classified := domain.ClassifyCapture(raw)
	if classified.Content == "" {
		return nil, ErrCaptureEmpty
	}

	result := &CaptureResult{Type: classified.Type, Content: classified.Content}

	switch classified.Type {
	case domain.CaptureNote:
		note, err := domain.NewNote(userID, classified.Content)
		if err != nil {
			return nil, err
		}
		if err := s.notes.Create(ctx, note); err != nil {
			return nil, fmt.Errorf("capture: storing note: %w", err)
		}
		result.ID = note.ID

	case domain.CaptureReading:
		item, err := domain.NewReadingItem(userID, classified.Content, "", "")
		if err != nil {
			return nil, err
		}
		if err := s.reading.Create(ctx, item); err != nil {
			return nil, fmt.Errorf("capture: storing reading item: %w", err)
		}
		result.ID = item.ID

	case domain.CaptureProject:
		project, err := domain.NewProject(userID, classified.Content, "")
		if err != nil {
			return nil, err
		}
		if err := s.projects.Create(ctx, project); err != nil {
			return nil, fmt.Errorf("capture: storing project: %w", err)
		}
		result.ID = project.ID

	default:
		// CaptureTask and generic captures both become inbox tasks.
		task, err := domain.NewTask(userID, classified.Content)
		if err != nil {
			return nil, err
		}
		if err := s.tasks.Create(ctx, task); err != nil {
			return nil, fmt.Errorf("capture: storing task: %w", err)
		}
		result.ID = task.ID
	}

	return result, nil
}
