package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
)

type TaskService struct {
	repo     domain.TaskRepository
	projects domain.ProjectRepository
	notifier SummaryNotifier
}

func NewTaskService(repo domain.TaskRepository, projects domain.ProjectRepository, notifier SummaryNotifier) *TaskService {
	return &TaskService{
		repo:     repo,
		projects: projects,
		notifier: notifier,
	}
}

type CreateTaskInput struct {
	UserID    string
	Title     string
	Notes     string
	Priority  string
	ProjectID *string
	DueDate   *time.Time
}

// UpdateTaskInput is an explicit patch: nil fields are left untouched.
type UpdateTaskInput struct {
	ID        string
	UserID    string
	Title     *string
	Notes     *string
	Priority  *string
	ProjectID *string
	DueDate   *time.Time
	Version   int
}

func (s *TaskService) Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error) {
	task, err := domain.NewTask(input.UserID, input.Title)
	if err != nil {
		return nil, err
	}

	task.Notes = input.Notes
	if input.Priority != "" {
		if err := task.SetPriority(input.Priority); err != nil {
			return nil, err
		}
	}

	if input.ProjectID != nil {
		if err := s.checkProject(ctx, *input.ProjectID, input.UserID); err != nil {
			return nil, err
		}
		task.ProjectID = input.ProjectID
	}
	if input.DueDate != nil {
		due := input.DueDate.UTC()
		task.DueDate = &due
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) GetByID(ctx context.Context, id, userID string) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, domain.ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) ListByUserID(ctx context.Context, userID string, filter domain.TaskFilter) ([]*domain.Task, error) {
	return s.repo.ListByUserID(ctx, userID, filter)
}

func (s *TaskService) Update(ctx context.Context, input UpdateTaskInput) (*domain.Task, error) {
	task, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && task.Version != input.Version {
		return nil, domain.ErrTaskConflict
	}

	if input.Title != nil {
		if err := task.Retitle(*input.Title); err != nil {
			return nil, err
		}
	}
	if input.Notes != nil {
		task.Notes = *input.Notes
		task.UpdatedAt = time.Now().UTC()
	}
	if input.Priority != nil {
		if err := task.SetPriority(*input.Priority); err != nil {
			return nil, err
		}
	}
	if input.ProjectID != nil {
		if *input.ProjectID == "" {
			task.ProjectID = nil
		} else {
			if err := s.checkProject(ctx, *input.ProjectID, input.UserID); err != nil {
				return nil, err
			}
			task.ProjectID = input.ProjectID
		}
		task.UpdatedAt = time.Now().UTC()
	}
	if input.DueDate != nil {
		due := input.DueDate.UTC()
		task.DueDate = &due
		task.UpdatedAt = time.Now().UTC()
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

// Complete marks a task done. Idempotent: re-completing keeps the original
// completion timestamp and does not bump the version again.
func (s *TaskService) Complete(ctx context.Context, id, userID string) (*domain.Task, error) {
	task, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if task.IsCompleted() {
		return task, nil
	}

	task.Complete(time.Now().UTC())
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.notify(userID)
	return task, nil
}

func (s *TaskService) Reopen(ctx context.Context, id, userID string) (*domain.Task, error) {
	task, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if !task.IsCompleted() {
		return task, nil
	}

	task.Reopen()
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	s.notify(userID)
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.notify(userID)
	return nil
}

func (s *TaskService) checkProject(ctx context.Context, projectID, userID string) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project.UserID != userID {
		return domain.ErrProjectNotFound
	}
	return nil
}

func (s *TaskService) notify(userID string) {
	if s.notifier != nil {
		s.notifier.Enqueue(userID)
	}
}
