package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
)

type PostgresTaskRepository struct {
	db *sqlx.DB
}

func NewPostgresTaskRepository(db *sqlx.DB) *PostgresTaskRepository {
	return &PostgresTaskRepository{db: db}
}

func (r *PostgresTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (
			id, user_id, project_id, title, notes, priority,
			due_date, completed_at,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :user_id, :project_id, :title, :notes, :priority,
			:due_date, :completed_at,
			:version, :created_at, :updated_at, :deleted_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, task)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return domain.ErrProjectNotFound
		}
		return fmt.Errorf("failed to insert task: %w", err)
	}
	return nil
}

func (r *PostgresTaskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	query := `SELECT * FROM tasks WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &task, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("task query error: %w", err)
	}
	return &task, nil
}

func (r *PostgresTaskRepository) ListByUserID(ctx context.Context, userID string, filter domain.TaskFilter) ([]*domain.Task, error) {
	tasks := []*domain.Task{}

	query := `SELECT * FROM tasks WHERE user_id = $1 AND deleted_at IS NULL`
	args := []interface{}{userID}

	if filter.ProjectID != nil {
		args = append(args, *filter.ProjectID)
		query += fmt.Sprintf(" AND project_id = $%d", len(args))
	}
	if filter.Completed != nil {
		if *filter.Completed {
			query += " AND completed_at IS NOT NULL"
		} else {
			query += " AND completed_at IS NULL"
		}
	}

	query += " ORDER BY created_at DESC"

	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("task list error: %w", err)
	}
	return tasks, nil
}

func (r *PostgresTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	query := `
		UPDATE tasks SET
			project_id = :project_id, title = :title, notes = :notes,
			priority = :priority, due_date = :due_date,
			completed_at = :completed_at,
			updated_at = :updated_at, version = version + 1
		WHERE id = :id AND version = :version AND deleted_at IS NULL`

	task.UpdatedAt = time.Now().UTC()

	result, err := r.db.NamedExecContext(ctx, query, task)
	if err != nil {
		return fmt.Errorf("task update failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		var count int
		checkQuery := `SELECT count(*) FROM tasks WHERE id = $1 AND deleted_at IS NULL`
		if checkErr := r.db.GetContext(ctx, &count, checkQuery, task.ID); checkErr != nil {
			return fmt.Errorf("existence check failed: %w", checkErr)
		}
		if count == 0 {
			return domain.ErrTaskNotFound
		}
		return domain.ErrTaskConflict
	}

	task.Version++
	return nil
}

func (r *PostgresTaskRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE tasks
		SET deleted_at = NOW(), updated_at = NOW(), version = version + 1
		WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("task delete failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *PostgresTaskRepository) CountCompletedSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var count int
	query := `
		SELECT count(*) FROM tasks
		WHERE user_id = $1 AND completed_at >= $2 AND deleted_at IS NULL`

	if err := r.db.GetContext(ctx, &count, query, userID, since); err != nil {
		return 0, fmt.Errorf("completed task count: %w", err)
	}
	return count, nil
}
