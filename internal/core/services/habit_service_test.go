package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
	"github.com/comitanigiacomo/life-cockpit/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T {
	return &v
}

type MockHabitRepo struct {
	store         map[string]*domain.Habit
	completions   map[string][]time.Time
	simulateError error
}

func NewMockHabitRepo() *MockHabitRepo {
	return &MockHabitRepo{
		store:       make(map[string]*domain.Habit),
		completions: make(map[string][]time.Time),
	}
}

func (m *MockHabitRepo) Create(ctx context.Context, habit *domain.Habit) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	clone := *habit
	m.store[habit.ID] = &clone
	return nil
}

func (m *MockHabitRepo) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	h, ok := m.store[id]
	if !ok || h.DeletedAt != nil {
		return nil, domain.ErrHabitNotFound
	}
	clone := *h
	return &clone, nil
}

func (m *MockHabitRepo) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var list []*domain.Habit
	for _, h := range m.store {
		if h.UserID == userID && h.DeletedAt == nil {
			clone := *h
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (m *MockHabitRepo) Update(ctx context.Context, habit *domain.Habit) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	if _, ok := m.store[habit.ID]; !ok {
		return domain.ErrHabitNotFound
	}
	habit.Version++
	clone := *habit
	m.store[habit.ID] = &clone
	return nil
}

func (m *MockHabitRepo) Delete(ctx context.Context, id string) error {
	if m.simulateError != nil {
		return m.simulateError
	}
	h, ok := m.store[id]
	if !ok {
		return domain.ErrHabitNotFound
	}
	now := time.Now().UTC()
	h.DeletedAt = &now
	return nil
}

func (m *MockHabitRepo) Complete(ctx context.Context, habitID, userID string, now time.Time, notes string) (*domain.Habit, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	h, ok := m.store[habitID]
	if !ok || h.DeletedAt != nil || h.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	if h.CompletedOn(now) {
		clone := *h
		return &clone, nil
	}
	h.StreakCount = domain.NextStreak(h.StreakCount, h.LastCompletedAt, now)
	h.LastCompletedAt = &now
	h.Version++
	m.completions[habitID] = append(m.completions[habitID], now)
	clone := *h
	return &clone, nil
}

func (m *MockHabitRepo) ListDates(ctx context.Context, habitID string, since time.Time) ([]time.Time, error) {
	if m.simulateError != nil {
		return nil, m.simulateError
	}
	var dates []time.Time
	for _, c := range m.completions[habitID] {
		if !c.Before(since) {
			dates = append(dates, c)
		}
	}
	return dates, nil
}

type recordingNotifier struct {
	enqueued []string
}

func (n *recordingNotifier) Enqueue(userID string) {
	n.enqueued = append(n.enqueued, userID)
}

func newTestService(repo *MockHabitRepo) *services.HabitService {
	return services.NewHabitService(repo, repo, nil)
}

func TestHabitService_Create(t *testing.T) {
	t.Run("Success: Should create and persist a valid habit", func(t *testing.T) {
		repo := NewMockHabitRepo()
		svc := newTestService(repo)
		ctx := context.Background()

		created, err := svc.Create(ctx, services.CreateHabitInput{
			UserID: "user-1",
			Name:   "Morning run",
		})

		assert.NoError(t, err)
		assert.NotNil(t, created)
		assert.Equal(t, "Morning run", created.Name)
		assert.Equal(t, domain.HabitFreqDaily, created.Frequency)
		assert.Equal(t, 0, created.StreakCount)
		assert.Equal(t, 1, created.Version)
		assert.NotEmpty(t, created.ID)

		stored, _ := repo.GetByID(ctx, created.ID)
		assert.NotNil(t, stored)
	})

	t.Run("Fail: Domain validation blocked before DB", func(t *testing.T) {
		repo := NewMockHabitRepo()
		svc := newTestService(repo)

		_, err := svc.Create(context.Background(), services.CreateHabitInput{
			UserID: "user-1",
			Name:   "   ",
		})

		assert.ErrorIs(t, err, domain.ErrHabitNameEmpty)
		assert.Empty(t, repo.store)
	})

	t.Run("Fail: Unknown frequency rejected", func(t *testing.T) {
		repo := NewMockHabitRepo()
		svc := newTestService(repo)

		_, err := svc.Create(context.Background(), services.CreateHabitInput{
			UserID:    "user-1",
			Name:      "Stretch",
			Frequency: "hourly",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidFrequency)
	})
}

func TestHabitService_Update(t *testing.T) {
	t.Run("Success: Patches only provided fields", func(t *testing.T) {
		repo := NewMockHabitRepo()
		svc := newTestService(repo)
		ctx := context.Background()

		existing, _ := domain.NewHabit("user-1", "Old Name", "weekly")
		repo.Create(ctx, existing)

		updated, err := svc.Update(ctx, services.UpdateHabitInput{
			ID:     existing.ID,
			UserID: "user-1",
			Name:   ptr("New Name"),
		})

		assert.NoError(t, err)
		assert.Equal(t, "New Name", updated.Name)
		assert.Equal(t, "weekly", updated.Frequency)
	})

	t.Run("Fail: Security - cannot update another user's habit", func(t *testing.T) {
		repo := NewMockHabitRepo()
		svc := newTestService(repo)
		ctx := context.Background()

		existing, _ := domain.NewHabit("user-1", "Secret Habit", "")
		repo.Create(ctx, existing)

		_, err := svc.Update(ctx, services.UpdateHabitInput{
			ID:     existing.ID,
			UserID: "user-2",
			Name:   ptr("Hijacked"),
		})

		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})

	t.Run("Optimistic locking: stale version rejected", func(t *testing.T) {
		repo := NewMockHabitRepo()
		svc := newTestService(repo)
		ctx := context.Background()

		existing, _ := domain.NewHabit("user-1", "V3 Habit", "")
		existing.Version = 3
		repo.Create(ctx, existing)

		_, err := svc.Update(ctx, services.UpdateHabitInput{
			ID:      existing.ID,
			UserID:  "user-1",
			Name:    ptr("Override attempt"),
			Version: 1,
		})

		assert.ErrorIs(t, err, domain.ErrHabitConflict)
	})
}

func TestHabitService_Complete(t *testing.T) {
	t.Run("Success: First completion starts streak at 1", func(t *testing.T) {
		repo := NewMockHabitRepo()
		svc := newTestService(repo)
		ctx := context.Background()

		habit, _ := domain.NewHabit("user-1", "Meditate", "")
		repo.Create(ctx, habit)

		updated, err := svc.Complete(ctx, habit.ID, "user-1", "")

		assert.NoError(t, err)
		assert.Equal(t, 1, updated.StreakCount)
		assert.NotNil(t, updated.LastCompletedAt)
	})

	t.Run("Idempotency: Same-day repeat does not double credit", func(t *testing.T) {
		repo := NewMockHabitRepo()
		svc := newTestService(repo)
		ctx := context.Background()

		habit, _ := domain.NewHabit("user-1", "Meditate", "")
		repo.Create(ctx, habit)

		first, err := svc.Complete(ctx, habit.ID, "user-1", "")
		assert.NoError(t, err)

		second, err := svc.Complete(ctx, habit.ID, "user-1", "again")
		assert.NoError(t, err)
		assert.Equal(t, first.StreakCount, second.StreakCount)
	})

	t.Run("Streak continues from yesterday", func(t *testing.T) {
		repo := NewMockHabitRepo()
		svc := newTestService(repo)
		ctx := context.Background()

		habit, _ := domain.NewHabit("user-1", "Meditate", "")
		repo.Create(ctx, habit)

		yesterday := time.Now().UTC().AddDate(0, 0, -1)
		stored := repo.store[habit.ID]
		stored.StreakCount = 4
		stored.LastCompletedAt = &yesterday

		updated, err := svc.Complete(ctx, habit.ID, "user-1", "")

		assert.NoError(t, err)
		assert.Equal(t, 5, updated.StreakCount)
	})

	t.Run("Fail: Security - cannot complete another user's habit", func(t *testing.T) {
		repo := NewMockHabitRepo()
		svc := newTestService(repo)
		ctx := context.Background()

		habit, _ := domain.NewHabit("user-1", "Private", "")
		repo.Create(ctx, habit)

		_, err := svc.Complete(ctx, habit.ID, "user-2", "")

		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})

	t.Run("Notifier: completion enqueues a summary refresh", func(t *testing.T) {
		repo := NewMockHabitRepo()
		notifier := &recordingNotifier{}
		svc := services.NewHabitService(repo, repo, notifier)
		ctx := context.Background()

		habit, _ := domain.NewHabit("user-1", "Meditate", "")
		repo.Create(ctx, habit)

		_, err := svc.Complete(ctx, habit.ID, "user-1", "")

		assert.NoError(t, err)
		assert.Equal(t, []string{"user-1"}, notifier.enqueued)
	})
}

func TestHabitService_ListWithStatus(t *testing.T) {
	t.Run("Marks completed today and fills the weekly window", func(t *testing.T) {
		repo := NewMockHabitRepo()
		svc := newTestService(repo)
		ctx := context.Background()

		habit, _ := domain.NewHabit("user-1", "Journal", "")
		repo.Create(ctx, habit)

		now := time.Now().UTC()
		repo.completions[habit.ID] = []time.Time{
			now,
			now.AddDate(0, 0, -2),
		}

		statuses, err := svc.ListWithStatus(ctx, "user-1")

		assert.NoError(t, err)
		assert.Len(t, statuses, 1)
		assert.True(t, statuses[0].CompletedToday)
		assert.Len(t, statuses[0].WeeklyCompletions, 7)
		assert.True(t, statuses[0].WeeklyCompletions[0])
		assert.False(t, statuses[0].WeeklyCompletions[1])
		assert.True(t, statuses[0].WeeklyCompletions[2])
	})

	t.Run("Empty habit list yields empty status list", func(t *testing.T) {
		repo := NewMockHabitRepo()
		svc := newTestService(repo)

		statuses, err := svc.ListWithStatus(context.Background(), "user-999")

		assert.NoError(t, err)
		assert.Len(t, statuses, 0)
	})
}

func TestHabitService_History(t *testing.T) {
	t.Run("Window of requested length, index 0 is today", func(t *testing.T) {
		repo := NewMockHabitRepo()
		svc := newTestService(repo)
		ctx := context.Background()

		habit, _ := domain.NewHabit("user-1", "Journal", "")
		repo.Create(ctx, habit)

		now := time.Now().UTC()
		repo.completions[habit.ID] = []time.Time{now.AddDate(0, 0, -1)}

		history, err := svc.History(ctx, habit.ID, "user-1", 3)

		assert.NoError(t, err)
		assert.Equal(t, []bool{false, true, false}, history)
	})

	t.Run("Fail: days below 1 rejected", func(t *testing.T) {
		repo := NewMockHabitRepo()
		svc := newTestService(repo)

		_, err := svc.History(context.Background(), "any", "user-1", 0)

		assert.ErrorIs(t, err, domain.ErrInvalidHistoryDays)
	})
}

func TestHabitService_Delete(t *testing.T) {
	t.Run("Success: soft delete hides the habit", func(t *testing.T) {
		repo := NewMockHabitRepo()
		svc := newTestService(repo)
		ctx := context.Background()

		habit, _ := domain.NewHabit("user-1", "To Delete", "")
		repo.Create(ctx, habit)

		err := svc.Delete(ctx, habit.ID, "user-1")

		assert.NoError(t, err)
		_, err = repo.GetByID(ctx, habit.ID)
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})

	t.Run("Fail: Security - cannot delete another user's habit", func(t *testing.T) {
		repo := NewMockHabitRepo()
		svc := newTestService(repo)
		ctx := context.Background()

		habit, _ := domain.NewHabit("user-1", "Keep Out", "")
		repo.Create(ctx, habit)

		err := svc.Delete(ctx, habit.ID, "user-2")

		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})
}
