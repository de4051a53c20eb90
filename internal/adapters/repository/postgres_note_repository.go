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

type PostgresNoteRepository struct {
	db *sqlx.DB
}

func NewPostgresNoteRepository(db *sqlx.DB) *PostgresNoteRepository {
	return &PostgresNoteRepository{db: db}
}

func (r *PostgresNoteRepository) Create(ctx context.Context, n *domain.Note) error {
	query := `
		INSERT INTO notes (
			id, user_id, body,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :user_id, :body,
			:version, :created_at, :updated_at, :deleted_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, n); err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}
	return nil
}

func (r *PostgresNoteRepository) GetByID(ctx context.Context, id string) (*domain.Note, error) {
	var n domain.Note
	query := `SELECT * FROM notes WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &n, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("note query error: %w", err)
	}
	return &n, nil
}

func (r *PostgresNoteRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Note, error) {
	notes := []*domain.Note{}

	query := `
		SELECT * FROM notes
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &notes, query, userID); err != nil {
		return nil, fmt.Errorf("note list error: %w", err)
	}
	return notes, nil
}

func (r *PostgresNoteRepository) Update(ctx context.Context, n *domain.Note) error {
	query := `
		UPDATE notes SET
			body = :body, updated_at = :updated_at, version = version + 1
		WHERE id = :id AND deleted_at IS NULL`

	n.UpdatedAt = time.Now().UTC()

	result, err := r.db.NamedExecContext(ctx, query, n)
	if err != nil {
		return fmt.Errorf("note update failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNoteNotFound
	}

	n.Version++
	return nil
}

func (r *PostgresNoteRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE notes
		SET deleted_at = NOW(), updated_at = NOW(), version = version + 1
		WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("note delete failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}
