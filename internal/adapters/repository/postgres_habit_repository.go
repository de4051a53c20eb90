package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	query := `
		INSERT INTO habits (
			id, user_id, name, frequency,
			streak_count, last_completed_at,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :user_id, :name, :frequency,
			:streak_count, :last_completed_at,
			:version, :created_at, :updated_at, :deleted_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, h)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrHabitConflict
		}
		return fmt.Errorf("failed to insert habit: %w", err)
	}
	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	var h domain.Habit
	query := `SELECT * FROM habits WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &h, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("habit query error: %w", err)
	}
	return &h, nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	habits := []*domain.Habit{}

	query := `
		SELECT * FROM habits
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at ASC`

	if err := r.db.SelectContext(ctx, &habits, query, userID); err != nil {
		return nil, fmt.Errorf("habit list error: %w", err)
	}
	return habits, nil
}

func (r *PostgresHabitRepository) Update(ctx context.Context, h *domain.Habit) error {
	query := `
		UPDATE habits SET
			name = $1, frequency = $2,
			updated_at = NOW(), version = version + 1
		WHERE id = $3 AND version = $4 AND deleted_at IS NULL
		RETURNING version, updated_at`

	row := r.db.QueryRowContext(ctx, query, h.Name, h.Frequency, h.ID, h.Version)

	var newVersion int
	var newUpdatedAt time.Time

	if err := row.Scan(&newVersion, &newUpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			var count int
			checkQuery := `SELECT count(*) FROM habits WHERE id = $1 AND deleted_at IS NULL`
			if checkErr := r.db.GetContext(ctx, &count, checkQuery, h.ID); checkErr != nil {
				return fmt.Errorf("existence check failed: %w", checkErr)
			}
			if count == 0 {
				return domain.ErrHabitNotFound
			}
			return domain.ErrHabitConflict
		}
		return fmt.Errorf("habit update failed: %w", err)
	}

	h.Version = newVersion
	h.UpdatedAt = newUpdatedAt
	return nil
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE habits
		SET deleted_at = NOW(), updated_at = NOW(), version = version + 1
		WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("habit delete failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}
	return nil
}

// Complete runs the whole read-recompute-write cycle in one transaction.
// The habit row is locked with FOR UPDATE, the streak is derived from the
// locked row (never from the caller's copy), and the completion insert and
// streak update commit together. A repeat completion on the same UTC day
// returns the current row untouched.
func (r *PostgresHabitRepository) Complete(ctx context.Context, habitID, userID string, now time.Time, notes string) (*domain.Habit, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin completion tx: %w", err)
	}
	defer tx.Rollback()

	var h domain.Habit
	lockQuery := `SELECT * FROM habits WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`

	if err := tx.GetContext(ctx, &h, lockQuery, habitID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("habit lock read: %w", err)
	}

	if h.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}

	if h.CompletedOn(now) {
		return &h, nil
	}

	newStreak := domain.NextStreak(h.StreakCount, h.LastCompletedAt, now)

	completion := domain.NewHabitCompletion(habitID, userID, now, notes)
	completion.ID = uuid.NewString()

	insertQuery := `
		INSERT INTO habit_completions (
			id, habit_id, user_id, completed_at, notes, created_at
		) VALUES (
			:id, :habit_id, :user_id, :completed_at, :notes, :created_at
		)`

	if _, err := tx.NamedExecContext(ctx, insertQuery, completion); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			// Unique (habit_id, day) index fired: the day is already
			// credited, treat the retry as a no-op.
			return &h, nil
		}
		return nil, fmt.Errorf("insert completion: %w", err)
	}

	completedAt := now.UTC()
	updateQuery := `
		UPDATE habits
		SET streak_count = $1, last_completed_at = $2,
		    updated_at = $2, version = version + 1
		WHERE id = $3`

	if _, err := tx.ExecContext(ctx, updateQuery, newStreak, completedAt, habitID); err != nil {
		return nil, fmt.Errorf("update streak: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit completion: %w", err)
	}

	h.StreakCount = newStreak
	h.LastCompletedAt = &completedAt
	h.UpdatedAt = completedAt
	h.Version++

	return &h, nil
}
