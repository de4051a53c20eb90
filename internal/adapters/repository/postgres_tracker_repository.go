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

// Tracker repositories: focus sessions, vitality logs, time allocations.
// Focus sessions are append-only (hard delete allowed); vitality logs and
// allocations are day/week-keyed upserts.

type PostgresFocusRepository struct {
	db *sqlx.DB
}

func NewPostgresFocusRepository(db *sqlx.DB) *PostgresFocusRepository {
	return &PostgresFocusRepository{db: db}
}

func (r *PostgresFocusRepository) Create(ctx context.Context, s *domain.FocusSession) error {
	query := `
		INSERT INTO focus_sessions (
			id, user_id, task_id, started_at, duration_minutes, label, created_at
		) VALUES (
			:id, :user_id, :task_id, :started_at, :duration_minutes, :label, :created_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			return domain.ErrTaskNotFound
		}
		return fmt.Errorf("failed to insert focus session: %w", err)
	}
	return nil
}

func (r *PostgresFocusRepository) ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*domain.FocusSession, error) {
	sessions := []*domain.FocusSession{}

	query := `
		SELECT * FROM focus_sessions
		WHERE user_id = $1 AND started_at >= $2 AND started_at <= $3
		ORDER BY started_at DESC`

	if err := r.db.SelectContext(ctx, &sessions, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("focus session list error: %w", err)
	}
	return sessions, nil
}

func (r *PostgresFocusRepository) Delete(ctx context.Context, id string, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM focus_sessions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("focus session delete failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrFocusNotFound
	}
	return nil
}

func (r *PostgresFocusRepository) MinutesSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var minutes int
	query := `
		SELECT COALESCE(SUM(duration_minutes), 0) FROM focus_sessions
		WHERE user_id = $1 AND started_at >= $2`

	if err := r.db.GetContext(ctx, &minutes, query, userID, since); err != nil {
		return 0, fmt.Errorf("focus minutes sum: %w", err)
	}
	return minutes, nil
}

type PostgresVitalityRepository struct {
	db *sqlx.DB
}

func NewPostgresVitalityRepository(db *sqlx.DB) *PostgresVitalityRepository {
	return &PostgresVitalityRepository{db: db}
}

func (r *PostgresVitalityRepository) Upsert(ctx context.Context, v *domain.VitalityLog) error {
	query := `
		INSERT INTO vitality_logs (
			id, user_id, log_date, energy, sleep_hours, mood, note, created_at, updated_at
		) VALUES (
			:id, :user_id, :log_date, :energy, :sleep_hours, :mood, :note, :created_at, :updated_at
		)
		ON CONFLICT (user_id, log_date) DO UPDATE SET
			energy = EXCLUDED.energy,
			sleep_hours = EXCLUDED.sleep_hours,
			mood = EXCLUDED.mood,
			note = EXCLUDED.note,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, v); err != nil {
		return fmt.Errorf("failed to upsert vitality log: %w", err)
	}
	return nil
}

func (r *PostgresVitalityRepository) GetByDate(ctx context.Context, userID string, day time.Time) (*domain.VitalityLog, error) {
	var v domain.VitalityLog
	query := `SELECT * FROM vitality_logs WHERE user_id = $1 AND log_date = $2`

	err := r.db.GetContext(ctx, &v, query, userID, day)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVitalityNotFound
		}
		return nil, fmt.Errorf("vitality log query error: %w", err)
	}
	return &v, nil
}

func (r *PostgresVitalityRepository) ListByUserID(ctx context.Context, userID string, from, to time.Time) ([]*domain.VitalityLog, error) {
	logs := []*domain.VitalityLog{}

	query := `
		SELECT * FROM vitality_logs
		WHERE user_id = $1 AND log_date >= $2 AND log_date <= $3
		ORDER BY log_date DESC`

	if err := r.db.SelectContext(ctx, &logs, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("vitality log list error: %w", err)
	}
	return logs, nil
}

func (r *PostgresVitalityRepository) AvgEnergySince(ctx context.Context, userID string, since time.Time) (float64, error) {
	var avg float64
	query := `
		SELECT COALESCE(AVG(energy), 0) FROM vitality_logs
		WHERE user_id = $1 AND log_date >= $2`

	if err := r.db.GetContext(ctx, &avg, query, userID, since); err != nil {
		return 0, fmt.Errorf("energy average: %w", err)
	}
	return avg, nil
}

type PostgresAllocationRepository struct {
	db *sqlx.DB
}

func NewPostgresAllocationRepository(db *sqlx.DB) *PostgresAllocationRepository {
	return &PostgresAllocationRepository{db: db}
}

func (r *PostgresAllocationRepository) Upsert(ctx context.Context, a *domain.TimeAllocation) error {
	query := `
		INSERT INTO time_allocations (
			id, user_id, category, planned_minutes, actual_minutes, week_start, created_at, updated_at
		) VALUES (
			:id, :user_id, :category, :planned_minutes, :actual_minutes, :week_start, :created_at, :updated_at
		)
		ON CONFLICT (user_id, category, week_start) DO UPDATE SET
			planned_minutes = EXCLUDED.planned_minutes,
			actual_minutes = EXCLUDED.actual_minutes,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, a); err != nil {
		return fmt.Errorf("failed to upsert time allocation: %w", err)
	}
	return nil
}

func (r *PostgresAllocationRepository) ListByWeek(ctx context.Context, userID string, weekStart time.Time) ([]*domain.TimeAllocation, error) {
	allocations := []*domain.TimeAllocation{}

	query := `
		SELECT * FROM time_allocations
		WHERE user_id = $1 AND week_start = $2
		ORDER BY category ASC`

	if err := r.db.SelectContext(ctx, &allocations, query, userID, weekStart); err != nil {
		return nil, fmt.Errorf("time allocation list error: %w", err)
	}
	return allocations, nil
}
