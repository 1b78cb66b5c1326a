package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

var _ domain.SnapshotRepository = (*PostgresSnapshotRepository)(nil)

type PostgresSnapshotRepository struct {
	db *sqlx.DB
}

func NewPostgresSnapshotRepository(db *sqlx.DB) *PostgresSnapshotRepository {
	return &PostgresSnapshotRepository{db: db}
}

func (r *PostgresSnapshotRepository) GetByUserID(ctx context.Context, userID string) (*domain.ProgressSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s domain.ProgressSnapshot
	query := `
		SELECT user_id, week, current_streak, longest_streak, total_days, granularity, updated_at
		FROM progress_snapshots
		WHERE user_id = $1`

	if err := r.db.GetContext(ctx, &s, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("repository: get snapshot failed: %w", err)
	}
	return &s, nil
}

func (r *PostgresSnapshotRepository) Upsert(ctx context.Context, s *domain.ProgressSnapshot) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO progress_snapshots (user_id, week, current_streak, longest_streak, total_days, granularity, updated_at)
		VALUES (:user_id, :week, :current_streak, :longest_streak, :total_days, :granularity, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			week = EXCLUDED.week,
			current_streak = EXCLUDED.current_streak,
			longest_streak = EXCLUDED.longest_streak,
			total_days = EXCLUDED.total_days,
			granularity = EXCLUDED.granularity,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.NamedExecContext(ctx, query, s); err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return ErrReferenceMissing
		}
		return fmt.Errorf("repository: upsert snapshot failed: %w", err)
	}
	return nil
}
