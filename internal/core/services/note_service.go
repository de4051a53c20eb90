package services

import (
	"context"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
)

type NoteService struct {
	repo domain.NoteRepository
}

func NewNoteService(repo domain.NoteRepository) *NoteService {
	return &NoteService{repo: repo}
}

func (s *NoteService) Create(ctx context.Context, userID, body string) (*domain.Note, error) {
	note, err := domain.NewNote(userID, body)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

func (s *NoteService) GetByID(ctx context.Context, id, userID string) (*domain.Note, error) {
	note, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.UserID != userID {
		return nil, domain.ErrNoteNotFound
	}
	return note, nil
}

func (s *NoteService) ListByUserID(ctx context.Context, userID string) ([]*domain.Note, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *NoteService) Update(ctx context.Context, id, userID, body string) (*domain.Note, error) {
	note, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := note.Rewrite(body); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, note); err != nil {
		return nil, err
	}

	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
