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

type PostgresReadingRepository struct {
	db *sqlx.DB
}

func NewPostgresReadingRepository(db *sqlx.DB) *PostgresReadingRepository {
	return &PostgresReadingRepository{db: db}
}

func (r *PostgresReadingRepository) Create(ctx context.Context, item *domain.ReadingItem) error {
	query := `
		INSERT INTO reading_items (
			id, user_id, title, author, url, status, finished_at,
			version, created_at, updated_at, deleted_at
		) VALUES (
			:id, :user_id, :title, :author, :url, :status, :finished_at,
			:version, :created_at, :updated_at, :deleted_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("failed to insert reading item: %w", err)
	}
	return nil
}

func (r *PostgresReadingRepository) GetByID(ctx context.Context, id string) (*domain.ReadingItem, error) {
	var item domain.ReadingItem
	query := `SELECT * FROM reading_items WHERE id = $1 AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrReadingNotFound
		}
		return nil, fmt.Errorf("reading item query error: %w", err)
	}
	return &item, nil
}

func (r *PostgresReadingRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.ReadingItem, error) {
	items := []*domain.ReadingItem{}

	query := `
		SELECT * FROM reading_items
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("reading item list error: %w", err)
	}
	return items, nil
}

func (r *PostgresReadingRepository) Update(ctx context.Context, item *domain.ReadingItem) error {
	query := `
		UPDATE reading_items SET
			title = :title, author = :author, url = :url,
			status = :status, finished_at = :finished_at,
			updated_at = :updated_at, version = version + 1
		WHERE id = :id AND deleted_at IS NULL`

	item.UpdatedAt = time.Now().UTC()

	result, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("reading item update failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrReadingNotFound
	}

	item.Version++
	return nil
}

func (r *PostgresReadingRepository) Delete(ctx context.Context, id string) error {
	query := `
		UPDATE reading_items
		SET deleted_at = NOW(), updated_at = NOW(), version = version + 1
		WHERE id = $1 AND deleted_at IS NULL`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("reading item delete failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrReadingNotFound
	}
	return nil
}
