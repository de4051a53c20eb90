package services_test

import (
	"context"
	"testing"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
	"github.com/comitanigiacomo/life-cockpit/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func newTaskFixture() (*services.TaskService, *MockTaskRepo, *MockProjectRepo) {
	tasks := NewMockTaskRepo()
	projects := NewMockProjectRepo()
	svc := services.NewTaskService(tasks, projects, nil)
	return svc, tasks, projects
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success: defaults to medium priority", func(t *testing.T) {
		svc, tasks, _ := newTaskFixture()

		created, err := svc.Create(ctx, services.CreateTaskInput{
			UserID: "user-1",
			Title:  "Write report",
		})

		assert.NoError(t, err)
		assert.Equal(t, domain.PriorityMedium, created.Priority)
		assert.Nil(t, created.CompletedAt)
		assert.Len(t, tasks.store, 1)
	})

	t.Run("Success: attaches to owned project", func(t *testing.T) {
		svc, _, projects := newTaskFixture()

		project, _ := domain.NewProject("user-1", "Home", "")
		projects.Create(ctx, project)

		created, err := svc.Create(ctx, services.CreateTaskInput{
			UserID:    "user-1",
			Title:     "Paint the fence",
			ProjectID: &project.ID,
		})

		assert.NoError(t, err)
		assert.NotNil(t, created.ProjectID)
		assert.Equal(t, project.ID, *created.ProjectID)
	})

	t.Run("Fail: cannot attach to another user's project", func(t *testing.T) {
		svc, tasks, projects := newTaskFixture()

		project, _ := domain.NewProject("user-2", "Theirs", "")
		projects.Create(ctx, project)

		_, err := svc.Create(ctx, services.CreateTaskInput{
			UserID:    "user-1",
			Title:     "Sneaky task",
			ProjectID: &project.ID,
		})

		assert.ErrorIs(t, err, domain.ErrProjectNotFound)
		assert.Empty(t, tasks.store)
	})

	t.Run("Fail: invalid priority rejected", func(t *testing.T) {
		svc, _, _ := newTaskFixture()

		_, err := svc.Create(ctx, services.CreateTaskInput{
			UserID:   "user-1",
			Title:    "Task",
			Priority: "urgent",
		})

		assert.ErrorIs(t, err, domain.ErrInvalidPriority)
	})
}

func TestTaskService_CompleteAndReopen(t *testing.T) {
	ctx := context.Background()

	t.Run("Complete stamps, re-complete is a no-op", func(t *testing.T) {
		svc, _, _ := newTaskFixture()

		created, _ := svc.Create(ctx, services.CreateTaskInput{UserID: "user-1", Title: "Once"})

		first, err := svc.Complete(ctx, created.ID, "user-1")
		assert.NoError(t, err)
		assert.NotNil(t, first.CompletedAt)

		second, err := svc.Complete(ctx, created.ID, "user-1")
		assert.NoError(t, err)
		assert.Equal(t, first.CompletedAt, second.CompletedAt)
		assert.Equal(t, first.Version, second.Version)
	})

	t.Run("Reopen clears the completion", func(t *testing.T) {
		svc, _, _ := newTaskFixture()

		created, _ := svc.Create(ctx, services.CreateTaskInput{UserID: "user-1", Title: "Again"})
		svc.Complete(ctx, created.ID, "user-1")

		reopened, err := svc.Reopen(ctx, created.ID, "user-1")

		assert.NoError(t, err)
		assert.Nil(t, reopened.CompletedAt)
		assert.False(t, reopened.IsCompleted())
	})

	t.Run("Fail: Security - cannot complete another user's task", func(t *testing.T) {
		svc, _, _ := newTaskFixture()

		created, _ := svc.Create(ctx, services.CreateTaskInput{UserID: "user-1", Title: "Mine"})

		_, err := svc.Complete(ctx, created.ID, "user-2")

		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})
}

func TestTaskService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty project id detaches the task", func(t *testing.T) {
		svc, _, projects := newTaskFixture()

		project, _ := domain.NewProject("user-1", "Home", "")
		projects.Create(ctx, project)

		created, _ := svc.Create(ctx, services.CreateTaskInput{
			UserID:    "user-1",
			Title:     "Attached",
			ProjectID: &project.ID,
		})

		updated, err := svc.Update(ctx, services.UpdateTaskInput{
			ID:        created.ID,
			UserID:    "user-1",
			ProjectID: ptr(""),
		})

		assert.NoError(t, err)
		assert.Nil(t, updated.ProjectID)
	})

	t.Run("Optimistic locking: stale version rejected", func(t *testing.T) {
		svc, tasks, _ := newTaskFixture()

		created, _ := svc.Create(ctx, services.CreateTaskInput{UserID: "user-1", Title: "Versioned"})
		tasks.store[created.ID].Version = 4

		_, err := svc.Update(ctx, services.UpdateTaskInput{
			ID:      created.ID,
			UserID:  "user-1",
			Title:   ptr("Stale write"),
			Version: 2,
		})

		assert.ErrorIs(t, err, domain.ErrTaskConflict)
	})
}

func TestTaskService_ListFilters(t *testing.T) {
	ctx := context.Background()
	svc, _, projects := newTaskFixture()

	project, _ := domain.NewProject("user-1", "Work", "")
	projects.Create(ctx, project)

	inProject, _ := svc.Create(ctx, services.CreateTaskInput{
		UserID:    "user-1",
		Title:     "In project",
		ProjectID: &project.ID,
	})
	loose, _ := svc.Create(ctx, services.CreateTaskInput{UserID: "user-1", Title: "Loose"})
	svc.Complete(ctx, loose.ID, "user-1")

	t.Run("Filter by project", func(t *testing.T) {
		list, err := svc.ListByUserID(ctx, "user-1", domain.TaskFilter{ProjectID: &project.ID})

		assert.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, inProject.ID, list[0].ID)
	})

	t.Run("Filter by completion", func(t *testing.T) {
		completed := true
		list, err := svc.ListByUserID(ctx, "user-1", domain.TaskFilter{Completed: &completed})

		assert.NoError(t, err)
		assert.Len(t, list, 1)
		assert.Equal(t, loose.ID, list[0].ID)
	})
}
