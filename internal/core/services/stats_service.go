package services

import (
	"context"
	"log"
	"time"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
)

// SummaryNotifier wakes the dashboard recompute worker after a write that
// affects a user's summary. Services tolerate a nil notifier.
type SummaryNotifier interface {
	Enqueue(userID string)
}

// SummaryCache holds precomputed dashboard summaries. Implementations live
// in the cache adapter; a nil cache disables read-through entirely.
type SummaryCache interface {
	Get(ctx context.Context, userID string) (*domain.DashboardSummary, error)
	Set(ctx context.Context, userID string, summary *domain.DashboardSummary) error
}

type StatsService struct {
	habits   domain.HabitRepository
	tasks    domain.TaskRepository
	focus    domain.FocusSessionRepository
	vitality domain.VitalityLogRepository
	cache    SummaryCache
}

func NewStatsService(
	habits domain.HabitRepository,
	tasks domain.TaskRepository,
	focus domain.FocusSessionRepository,
	vitality domain.VitalityLogRepository,
	cache SummaryCache,
) *StatsService {
	return &StatsService{
		habits:   habits,
		tasks:    tasks,
		focus:    focus,
		vitality: vitality,
		cache:    cache,
	}
}

// Summary computes the dashboard head-view from scratch: habit aggregates,
// today's focus minutes and completed tasks, the seven-day average energy,
// and the productivity score derived from all three.
func (s *StatsService) Summary(ctx context.Context, userID string, now time.Time) (*domain.DashboardSummary, error) {
	today := domain.DayUTC(now)
	weekAgo := today.AddDate(0, 0, -6)

	habits, err := s.habits.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	focusMinutes, err := s.focus.MinutesSince(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	tasksDone, err := s.tasks.CountCompletedSince(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	avgEnergy, err := s.vitality.AvgEnergySince(ctx, userID, weekAgo)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardSummary{
		Habits:              domain.AggregateHabitStats(habits, now),
		FocusMinutesToday:   focusMinutes,
		TasksCompletedToday: tasksDone,
		AvgEnergy:           avgEnergy,
		ProductivityScore:   domain.ProductivityScore(focusMinutes, tasksDone, avgEnergy),
		GeneratedAt:         now,
	}, nil
}

// CachedSummary serves from the summary cache when possible, falling back
// to a fresh computation (and repopulating the cache) on a miss. Cache
// failures are logged, never surfaced: the dashboard prefers a slow answer
// over no answer.
func (s *StatsService) CachedSummary(ctx context.Context, userID string) (*domain.DashboardSummary, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, userID)
		if err == nil && cached != nil {
			return cached, nil
		}
		if err != nil {
			log.Printf("[STATS] summary cache read for user %s: %v", userID, err)
		}
	}

	summary, err := s.Summary(ctx, userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, userID, summary); err != nil {
			log.Printf("[STATS] summary cache write for user %s: %v", userID, err)
		}
	}

	return summary, nil
}
