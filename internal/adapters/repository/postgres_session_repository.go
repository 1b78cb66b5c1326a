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

var _ domain.SessionRepository = (*PostgresSessionRepository)(nil)

type PostgresSessionRepository struct {
	db *sqlx.DB
}

func NewPostgresSessionRepository(db *sqlx.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db: db}
}

func (r *PostgresSessionRepository) FetchHistory(ctx context.Context, userID string) ([]*domain.DaySession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	sessions := []*domain.DaySession{}
	query := `
		SELECT id, user_id, session_date, progress, created_at, updated_at
		FROM workout_sessions
		WHERE user_id = $1
		ORDER BY session_date ASC`

	if err := r.db.SelectContext(ctx, &sessions, query, userID); err != nil {
		return nil, fmt.Errorf("repository: fetch history failed: %w", err)
	}
	return sessions, nil
}

func (r *PostgresSessionRepository) FetchDay(ctx context.Context, userID string, date domain.DateKey) (*domain.DaySession, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var s domain.DaySession
	query := `
		SELECT id, user_id, session_date, progress, created_at, updated_at
		FROM workout_sessions
		WHERE user_id = $1 AND session_date = $2`

	err := r.db.GetContext(ctx, &s, query, userID, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("repository: fetch day failed: %w", err)
	}
	return &s, nil
}

func (r *PostgresSessionRepository) Upsert(ctx context.Context, s *domain.DaySession) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO workout_sessions (id, user_id, session_date, progress, created_at, updated_at)
		VALUES (:id, :user_id, :session_date, :progress, :created_at, :updated_at)
		ON CONFLICT (user_id, session_date) DO UPDATE SET
			progress = EXCLUDED.progress,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.NamedExecContext(ctx, query, s)
	if err != nil {
		if pgCode(err) == pgForeignKeyViolation {
			return ErrReferenceMissing
		}
		return fmt.Errorf("repository: upsert session failed: %w", err)
	}
	return nil
}
