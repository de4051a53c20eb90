package services

import (
	"context"
	"time"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
)

// TrackerService covers the time-and-body side of the dashboard: focus
// sessions, daily vitality logs, and weekly time allocations. Each write is
// a thin pass-through to its repository.
type TrackerService struct {
	focus       domain.FocusSessionRepository
	vitality    domain.VitalityLogRepository
	allocations domain.TimeAllocationRepository
	tasks       domain.TaskRepository
	notifier    SummaryNotifier
}

func NewTrackerService(
	focus domain.FocusSessionRepository,
	vitality domain.VitalityLogRepository,
	allocations domain.TimeAllocationRepository,
	tasks domain.TaskRepository,
	notifier SummaryNotifier,
) *TrackerService {
	return &TrackerService{
		focus:       focus,
		vitality:    vitality,
		allocations: allocations,
		tasks:       tasks,
		notifier:    notifier,
	}
}

type LogFocusInput struct {
	UserID          string
	TaskID          *string
	StartedAt       time.Time
	DurationMinutes int
	Label           string
}

func (s *TrackerService) LogFocus(ctx context.Context, input LogFocusInput) (*domain.FocusSession, error) {
	session, err := domain.NewFocusSession(input.UserID, input.StartedAt, input.DurationMinutes, input.Label)
	if err != nil {
		return nil, err
	}

	if input.TaskID != nil {
		task, err := s.tasks.GetByID(ctx, *input.TaskID)
		if err != nil {
			return nil, err
		}
		if task.UserID != input.UserID {
			return nil, domain.ErrTaskNotFound
		}
		session.TaskID = input.TaskID
	}

	if err := s.focus.Create(ctx, session); err != nil {
		return nil, err
	}

	s.notify(input.UserID)
	return session, nil
}

func (s *TrackerService) ListFocus(ctx context.Context, userID string, from, to time.Time) ([]*domain.FocusSession, error) {
	return s.focus.ListByUserID(ctx, userID, from, to)
}

func (s *TrackerService) DeleteFocus(ctx context.Context, id, userID string) error {
	if err := s.focus.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.notify(userID)
	return nil
}

type LogVitalityInput struct {
	UserID     string
	LogDate    time.Time
	Energy     int
	SleepHours float64
	Mood       string
	Note       string
}

// LogVitality upserts the log for its day: one row per user per UTC date.
func (s *TrackerService) LogVitality(ctx context.Context, input LogVitalityInput) (*domain.VitalityLog, error) {
	logDate := input.LogDate
	if logDate.IsZero() {
		logDate = time.Now().UTC()
	}

	log, err := domain.NewVitalityLog(input.UserID, logDate, input.Energy, input.SleepHours, input.Mood, input.Note)
	if err != nil {
		return nil, err
	}

	if err := s.vitality.Upsert(ctx, log); err != nil {
		return nil, err
	}

	s.notify(input.UserID)
	return log, nil
}

func (s *TrackerService) GetVitality(ctx context.Context, userID string, day time.Time) (*domain.VitalityLog, error) {
	return s.vitality.GetByDate(ctx, userID, domain.DayUTC(day))
}

func (s *TrackerService) ListVitality(ctx context.Context, userID string, from, to time.Time) ([]*domain.VitalityLog, error) {
	return s.vitality.ListByUserID(ctx, userID, from, to)
}

type AllocateTimeInput struct {
	UserID         string
	Category       string
	PlannedMinutes int
	ActualMinutes  int
	Week           time.Time
}

// AllocateTime upserts the weekly planned-vs-actual bucket for a category.
func (s *TrackerService) AllocateTime(ctx context.Context, input AllocateTimeInput) (*domain.TimeAllocation, error) {
	week := input.Week
	if week.IsZero() {
		week = time.Now().UTC()
	}

	alloc, err := domain.NewTimeAllocation(input.UserID, input.Category, input.PlannedMinutes, input.ActualMinutes, week)
	if err != nil {
		return nil, err
	}

	if err := s.allocations.Upsert(ctx, alloc); err != nil {
		return nil, err
	}

	return alloc, nil
}

func (s *TrackerService) ListAllocations(ctx context.Context, userID string, week time.Time) ([]*domain.TimeAllocation, error) {
	if week.IsZero() {
		week = time.Now().UTC()
	}
	return s.allocations.ListByWeek(ctx, userID, domain.WeekStartUTC(week))
}

func (s *TrackerService) notify(userID string) {
	if s.notifier != nil {
		s.notifier.Enqueue(userID)
	}
}
