package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/life-cockpit/internal/core/domain"
)

var _ domain.CompletionRepository = (*PostgresCompletionRepository)(nil)

// PostgresCompletionRepository reads the append-only completion log.
// Writes happen only inside PostgresHabitRepository.Complete.
type PostgresCompletionRepository struct {
	db *sqlx.DB
}

func NewPostgresCompletionRepository(db *sqlx.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

func (r *PostgresCompletionRepository) ListDates(ctx context.Context, habitID string, since time.Time) ([]time.Time, error) {
	dates := []time.Time{}

	query := `
		SELECT completed_at FROM habit_completions
		WHERE habit_id = $1 AND completed_at >= $2
		ORDER BY completed_at DESC`

	if err := r.db.SelectContext(ctx, &dates, query, habitID, since); err != nil {
		return nil, fmt.Errorf("completion dates query: %w", err)
	}
	return dates, nil
}
