package services

import (
	"context"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
)

type ProjectService struct {
	repo domain.ProjectRepository
}

func NewProjectService(repo domain.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

type CreateProjectInput struct {
	UserID      string
	Name        string
	Description string
}

type UpdateProjectInput struct {
	ID          string
	UserID      string
	Name        *string
	Description *string
	Status      *string
}

func (s *ProjectService) Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error) {
	project, err := domain.NewProject(input.UserID, input.Name, input.Description)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *ProjectService) GetByID(ctx context.Context, id, userID string) (*domain.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID {
		return nil, domain.ErrProjectNotFound
	}
	return project, nil
}

func (s *ProjectService) ListByUserID(ctx context.Context, userID string) ([]*domain.Project, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *ProjectService) Update(ctx context.Context, input UpdateProjectInput) (*domain.Project, error) {
	project, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := project.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Status != nil {
		if err := project.SetStatus(*input.Status); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
