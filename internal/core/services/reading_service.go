package services

import (
	"context"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
)

type ReadingService struct {
	repo domain.ReadingRepository
}

func NewReadingService(repo domain.ReadingRepository) *ReadingService {
	return &ReadingService{repo: repo}
}

type CreateReadingInput struct {
	UserID string
	Title  string
	Author string
	URL    string
}

type UpdateReadingInput struct {
	ID     string
	UserID string
	Title  *string
	Author *string
	URL    *string
	Status *string
}

func (s *ReadingService) Create(ctx context.Context, input CreateReadingInput) (*domain.ReadingItem, error) {
	item, err := domain.NewReadingItem(input.UserID, input.Title, input.Author, input.URL)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *ReadingService) GetByID(ctx context.Context, id, userID string) (*domain.ReadingItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, domain.ErrReadingNotFound
	}
	return item, nil
}

func (s *ReadingService) ListByUserID(ctx context.Context, userID string) ([]*domain.ReadingItem, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *ReadingService) Update(ctx context.Context, input UpdateReadingInput) (*domain.ReadingItem, error) {
	item, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, domain.ErrReadingTitleEmpty
		}
		item.Title = *input.Title
	}
	if input.Author != nil {
		item.Author = *input.Author
	}
	if input.URL != nil {
		item.URL = *input.URL
	}
	if input.Status != nil {
		if err := item.SetStatus(*input.Status); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

func (s *ReadingService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
