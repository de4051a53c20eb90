package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
)

// InMemoryHabitRepository backs tests and local development. Complete
// serializes on the mutex, mirroring the row lock the Postgres
// implementation takes.
type InMemoryHabitRepository struct {
	habits      map[string]*domain.Habit
	completions map[string][]*domain.HabitCompletion

	mu sync.RWMutex
}

func NewInMemoryHabitRepository() *InMemoryHabitRepository {
	return &InMemoryHabitRepository{
		habits:      make(map[string]*domain.Habit),
		completions: make(map[string][]*domain.HabitCompletion),
	}
}

func (r *InMemoryHabitRepository) Create(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *habit
	r.habits[habit.ID] = &clone
	return nil
}

func (r *InMemoryHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	habit, ok := r.habits[id]
	if !ok || habit.DeletedAt != nil {
		return nil, domain.ErrHabitNotFound
	}

	clone := *habit
	return &clone, nil
}

func (r *InMemoryHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var habits []*domain.Habit
	for _, h := range r.habits {
		if h.UserID == userID && h.DeletedAt == nil {
			clone := *h
			habits = append(habits, &clone)
		}
	}

	sort.Slice(habits, func(i, j int) bool {
		return habits[i].CreatedAt.Before(habits[j].CreatedAt)
	})

	return habits, nil
}

func (r *InMemoryHabitRepository) Update(ctx context.Context, habit *domain.Habit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.habits[habit.ID]
	if !ok || existing.DeletedAt != nil {
		return domain.ErrHabitNotFound
	}
	if habit.Version != existing.Version {
		return domain.ErrHabitConflict
	}

	clone := *habit
	clone.Version++
	clone.UpdatedAt = time.Now().UTC()
	r.habits[habit.ID] = &clone

	habit.Version = clone.Version
	habit.UpdatedAt = clone.UpdatedAt
	return nil
}

func (r *InMemoryHabitRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	habit, ok := r.habits[id]
	if !ok || habit.DeletedAt != nil {
		return domain.ErrHabitNotFound
	}

	now := time.Now().UTC()
	habit.DeletedAt = &now
	habit.Version++
	return nil
}

func (r *InMemoryHabitRepository) Complete(ctx context.Context, habitID, userID string, now time.Time, notes string) (*domain.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	habit, ok := r.habits[habitID]
	if !ok || habit.DeletedAt != nil || habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	if habit.CompletedOn(now) {
		clone := *habit
		return &clone, nil
	}

	habit.StreakCount = domain.NextStreak(habit.StreakCount, habit.LastCompletedAt, now)
	completedAt := now.UTC()
	habit.LastCompletedAt = &completedAt
	habit.UpdatedAt = completedAt
	habit.Version++

	completion := domain.NewHabitCompletion(habitID, userID, now, notes)
	r.completions[habitID] = append(r.completions[habitID], completion)

	clone := *habit
	return &clone, nil
}

// ListDates satisfies domain.CompletionRepository over the same store.
func (r *InMemoryHabitRepository) ListDates(ctx context.Context, habitID string, since time.Time) ([]time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var dates []time.Time
	for _, c := range r.completions[habitID] {
		if !c.CompletedAt.Before(since) {
			dates = append(dates, c.CompletedAt)
		}
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].After(dates[j])
	})

	return dates, nil
}
