package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

// SnapshotScheduler is told about every user whose history changed.
type SnapshotScheduler interface {
	Enqueue(userID string)
}

type SessionService struct {
	repo      domain.SessionRepository
	catalog   *domain.Catalog
	scheduler SnapshotScheduler
}

func NewSessionService(repo domain.SessionRepository, catalog *domain.Catalog, scheduler SnapshotScheduler) *SessionService {
	return &SessionService{
		repo:      repo,
		catalog:   catalog,
		scheduler: scheduler,
	}
}

type SaveProgressInput struct {
	UserID   string
	Date     domain.DateKey
	Progress domain.DayProgress
}

// SaveProgress merges the given exercises into the user's session for the
// date. Exercises not mentioned keep their stored progress.
func (s *SessionService) SaveProgress(ctx context.Context, input SaveProgressInput) (*domain.DaySession, error) {
	if !input.Date.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDate, input.Date)
	}

	clean, err := s.normalize(input.Progress)
	if err != nil {
		return nil, err
	}

	session, err := s.repo.FetchDay(ctx, input.UserID, input.Date)
	switch {
	case errors.Is(err, domain.ErrSessionNotFound):
		session = domain.NewDaySession(input.UserID, input.Date, clean)
	case err != nil:
		return nil, fmt.Errorf("session service: failed to load session: %w", err)
	default:
		session.Progress = session.Progress.Merge(clean)
		session.UpdatedAt = time.Now().UTC()
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, session); err != nil {
		return nil, fmt.Errorf("session service: failed to save session: %w", err)
	}

	if s.scheduler != nil {
		s.scheduler.Enqueue(input.UserID)
	}

	return session, nil
}

func (s *SessionService) normalize(progress domain.DayProgress) (domain.DayProgress, error) {
	if len(progress) == 0 {
		return nil, domain.ErrEmptyProgress
	}

	clean := make(domain.DayProgress, len(progress))
	for playlistID, exercises := range progress {
		playlist, err := s.catalog.Find(playlistID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, playlistID)
		}

		out := make(domain.PlaylistProgress, len(exercises))
		for exerciseID, rec := range exercises {
			exercise, ok := playlist.Exercise(exerciseID)
			if !ok {
				return nil, fmt.Errorf("%w: %s/%s", domain.ErrExerciseNotFound, playlistID, exerciseID)
			}

			normalized, err := rec.Normalize(exercise.Sets)
			if err != nil {
				return nil, fmt.Errorf("%s/%s: %w", playlistID, exerciseID, err)
			}
			out[exerciseID] = normalized
		}
		clean[playlistID] = out
	}

	return clean, nil
}

// GetDay returns nil without error when nothing was recorded that day.
func (s *SessionService) GetDay(ctx context.Context, userID string, date domain.DateKey) (*domain.DaySession, error) {
	session, err := s.repo.FetchDay(ctx, userID, date)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session service: failed to load session: %w", err)
	}
	return session, nil
}

func (s *SessionService) History(ctx context.Context, userID string) (domain.CompletionHistory, error) {
	sessions, err := s.repo.FetchHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("session service: failed to load history: %w", err)
	}
	return domain.NewCompletionHistory(sessions), nil
}
