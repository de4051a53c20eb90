package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
)

type HabitService struct {
	repo        domain.HabitRepository
	completions domain.CompletionRepository
	notifier    SummaryNotifier
}

func NewHabitService(repo domain.HabitRepository, completions domain.CompletionRepository, notifier SummaryNotifier) *HabitService {
	return &HabitService{
		repo:        repo,
		completions: completions,
		notifier:    notifier,
	}
}

type CreateHabitInput struct {
	UserID    string
	Name      string
	Frequency string
}

// UpdateHabitInput is an explicit patch: nil fields are left untouched.
type UpdateHabitInput struct {
	ID        string
	UserID    string
	Name      *string
	Frequency *string
	Version   int
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.UserID, input.Name, input.Frequency)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) GetByID(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Version > 0 && habit.Version != input.Version {
		return nil, domain.ErrHabitConflict
	}

	if input.Name != nil {
		if err := habit.Rename(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Frequency != nil {
		if err := habit.SetFrequency(*input.Frequency); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	return habit, nil
}

func (s *HabitService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.GetByID(ctx, id, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.notify(userID)
	return nil
}

// Complete records today's completion and advances the streak. The streak
// arithmetic runs inside the repository transaction against the freshly
// read row, so concurrent or retried calls for the same habit cannot
// double-credit a day.
func (s *HabitService) Complete(ctx context.Context, id, userID, notes string) (*domain.Habit, error) {
	habit, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Complete(ctx, habit.ID, userID, time.Now().UTC(), notes)
	if err != nil {
		return nil, err
	}

	s.notify(userID)
	return updated, nil
}

// ListWithStatus decorates each habit with today's completion flag and the
// seven-day completion window the dashboard renders.
func (s *HabitService) ListWithStatus(ctx context.Context, userID string) ([]*domain.HabitWithStatus, error) {
	habits, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	since := domain.DayUTC(now).AddDate(0, 0, -6)

	statuses := make([]*domain.HabitWithStatus, 0, len(habits))
	for _, h := range habits {
		dates, err := s.completions.ListDates(ctx, h.ID, since)
		if err != nil {
			return nil, err
		}

		week, err := domain.CompletionHistory(7, dates, now)
		if err != nil {
			return nil, err
		}

		statuses = append(statuses, &domain.HabitWithStatus{
			Habit:             *h,
			CompletedToday:    week[0],
			WeeklyCompletions: week,
		})
	}

	return statuses, nil
}

// History returns the completion window for one habit, index 0 = today.
func (s *HabitService) History(ctx context.Context, id, userID string, days int) ([]bool, error) {
	if days < 1 {
		return nil, domain.ErrInvalidHistoryDays
	}

	habit, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	since := domain.DayUTC(now).AddDate(0, 0, -(days - 1))

	dates, err := s.completions.ListDates(ctx, habit.ID, since)
	if err != nil {
		return nil, err
	}

	return domain.CompletionHistory(days, dates, now)
}

func (s *HabitService) notify(userID string) {
	if s.notifier != nil {
		s.notifier.Enqueue(userID)
	}
}
