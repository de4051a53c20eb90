package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
)

type PostgresProjectRepository struct {
	db *sqlx.DB
}

func NewPostgresProjectRepository(db *sqlx.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

func (r *PostgresProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	query := `
		INSERT INTO projects (
			id, user_id, name, description, status,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :user_id, :name, :description, :status,
			:version, :created_at, :updated_at, :deleted_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, p); err != nil {
		return fmt.Errorf("failed to insert project: %w", err)
	}
	return nil
}

func (r *PostgresProjectRepository) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	var p domain.Project
	query := `SELECT * FROM projects WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("project query error: %w", err)
	}
	return &p, nil
}

func (r *PostgresProjectRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Project, error) {
	projects := []*domain.Project{}

	query := `
		SELECT * FROM projects
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &projects, query, userID); err != nil {
		return nil, fmt.Errorf("project list error: %w", err)
	}
	return projects, nil
}

func (r *PostgresProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	query := `
		UPDATE projects SET
			name = :name, description = :description, status = :status,
			updated_at = :updated_at, version = version + 1
		WHERE id = :id AND deleted_at IS NULL`

	p.UpdatedAt = time.Now().UTC()

	result, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return fmt.Errorf("project update failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProjectNotFound
	}

	p.Version++
	return nil
}

func (r *PostgresProjectRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE projects
		SET deleted_at = NOW(), updated_at = NOW(), version = version + 1
		WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("project delete failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrProjectNotFound
	}
	return nil
}
