package repository

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		dbUser = "cockpit_user"
	}
	dbPass := os.Getenv("DB_PASSWORD")
	if dbPass == "" {
		dbPass = "secret"
	}
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}
	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}
	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		dbName = "cockpit_db"
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		t.Skipf("Skipping integration tests: database connection failed: %v", err)
	}
	return db
}

func cleanup(t *testing.T, db *sqlx.DB) {
	_, err := db.Exec("TRUNCATE TABLE habit_completions, habits, users CASCADE")
	require.NoError(t, err, "Failed to clean up database")
}

func createUserFixture(t *testing.T, db *sqlx.DB, id, email string) {
	_, err := db.Exec(`INSERT INTO users (id, email, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())`, id, email)
	require.NoError(t, err, "Failed to create user fixture")
}

func TestPostgresHabitRepository_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanup(t, db)
	defer cleanup(t, db)

	repo := NewPostgresHabitRepository(db)
	ctx := context.Background()

	userID := "habit-int-user-1"
	createUserFixture(t, db, userID, "habit-test@cockpit.app")

	habit, err := domain.NewHabit(userID, "Morning pages", "daily")
	require.NoError(t, err)

	t.Run("Create and GetByID", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, habit))

		fetched, err := repo.GetByID(ctx, habit.ID)
		require.NoError(t, err)
		assert.Equal(t, habit.Name, fetched.Name)
		assert.Equal(t, 0, fetched.StreakCount)
		assert.Nil(t, fetched.LastCompletedAt)
	})

	t.Run("Duplicate id maps to conflict", func(t *testing.T) {
		err := repo.Create(ctx, habit)
		assert.ErrorIs(t, err, domain.ErrHabitConflict)
	})

	t.Run("Update bumps version, stale write conflicts", func(t *testing.T) {
		fetched, err := repo.GetByID(ctx, habit.ID)
		require.NoError(t, err)

		require.NoError(t, fetched.Rename("Evening pages"))
		staleVersion := fetched.Version

		require.NoError(t, repo.Update(ctx, fetched))
		assert.Equal(t, staleVersion+1, fetched.Version)

		stale := *fetched
		stale.Version = staleVersion
		err = repo.Update(ctx, &stale)
		assert.ErrorIs(t, err, domain.ErrHabitConflict)
	})

	t.Run("Complete starts the streak and logs a completion", func(t *testing.T) {
		now := time.Now().UTC()

		updated, err := repo.Complete(ctx, habit.ID, userID, now, "first run")
		require.NoError(t, err)
		assert.Equal(t, 1, updated.StreakCount)
		require.NotNil(t, updated.LastCompletedAt)

		var count int
		require.NoError(t, db.Get(&count,
			`SELECT count(*) FROM habit_completions WHERE habit_id = $1`, habit.ID))
		assert.Equal(t, 1, count)
	})

	t.Run("Same-day repeat does not double credit", func(t *testing.T) {
		now := time.Now().UTC()

		updated, err := repo.Complete(ctx, habit.ID, userID, now, "")
		require.NoError(t, err)
		assert.Equal(t, 1, updated.StreakCount)

		var count int
		require.NoError(t, db.Get(&count,
			`SELECT count(*) FROM habit_completions WHERE habit_id = $1`, habit.ID))
		assert.Equal(t, 1, count)
	})

	t.Run("Concurrent completions credit the day once", func(t *testing.T) {
		racer, err := domain.NewHabit(userID, "Race me", "daily")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, racer))

		now := time.Now().UTC()
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				repo.Complete(ctx, racer.ID, userID, now, "")
			}()
		}
		wg.Wait()

		fetched, err := repo.GetByID(ctx, racer.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, fetched.StreakCount)

		var count int
		require.NoError(t, db.Get(&count,
			`SELECT count(*) FROM habit_completions WHERE habit_id = $1`, racer.ID))
		assert.Equal(t, 1, count)
	})

	t.Run("Complete for the wrong user is not found", func(t *testing.T) {
		_, err := repo.Complete(ctx, habit.ID, "someone-else", time.Now().UTC(), "")
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})

	t.Run("Soft delete hides the habit", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, habit.ID))

		_, err := repo.GetByID(ctx, habit.ID)
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)

		list, err := repo.ListByUserID(ctx, userID)
		require.NoError(t, err)
		for _, h := range list {
			assert.NotEqual(t, habit.ID, h.ID)
		}
	})
}

func TestPostgresCompletionRepository_Integration(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	cleanup(t, db)
	defer cleanup(t, db)

	habits := NewPostgresHabitRepository(db)
	completions := NewPostgresCompletionRepository(db)
	ctx := context.Background()

	userID := "completion-int-user-1"
	createUserFixture(t, db, userID, "completion-test@cockpit.app")

	habit, err := domain.NewHabit(userID, "Stretch", "daily")
	require.NoError(t, err)
	require.NoError(t, habits.Create(ctx, habit))

	now := time.Now().UTC()
	_, err = habits.Complete(ctx, habit.ID, userID, now, "")
	require.NoError(t, err)

	t.Run("ListDates returns completions in window", func(t *testing.T) {
		since := domain.DayUTC(now).AddDate(0, 0, -6)

		dates, err := completions.ListDates(ctx, habit.ID, since)
		require.NoError(t, err)
		require.Len(t, dates, 1)
		assert.Equal(t, domain.DayUTC(now), domain.DayUTC(dates[0]))
	})

	t.Run("ListDates excludes completions before window", func(t *testing.T) {
		dates, err := completions.ListDates(ctx, habit.ID, domain.DayUTC(now).AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Empty(t, dates)
	})
}
