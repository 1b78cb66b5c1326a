package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/core/progress"
)

type HistoryLoader interface {
	History(ctx context.Context, userID string) (domain.CompletionHistory, error)
}

type ProgressService struct {
	history     HistoryLoader
	catalog     *domain.Catalog
	snapshots   domain.SnapshotRepository
	granularity progress.Granularity
}

func NewProgressService(history HistoryLoader, catalog *domain.Catalog, snapshots domain.SnapshotRepository, granularity progress.Granularity) *ProgressService {
	return &ProgressService{
		history:     history,
		catalog:     catalog,
		snapshots:   snapshots,
		granularity: granularity,
	}
}

func (s *ProgressService) Granularity() progress.Granularity {
	return s.granularity
}

func (s *ProgressService) Dashboard(ctx context.Context, userID string, today time.Time) (*domain.Dashboard, error) {
	h, err := s.history.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	d := progress.BuildDashboard(s.catalog.Playlists(), h, today, s.granularity)
	return &d, nil
}

func (s *ProgressService) Overview(ctx context.Context, userID string, today time.Time) (*domain.Overview, error) {
	h, err := s.history.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	o := progress.BuildOverview(s.catalog.Playlists(), h, today, s.granularity)
	return &o, nil
}

func (s *ProgressService) Calendar(ctx context.Context, userID string, year int, month time.Month) (*domain.MonthCalendar, error) {
	h, err := s.history.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &domain.MonthCalendar{
		Year:  year,
		Month: int(month),
		Dates: progress.WorkoutDatesForMonth(h, year, month),
	}, nil
}

func (s *ProgressService) PlaylistProgress(ctx context.Context, userID, playlistID string) (*domain.PlaylistCard, error) {
	playlist, err := s.catalog.Find(playlistID)
	if err != nil {
		return nil, err
	}

	h, err := s.history.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.PlaylistCard{
		Playlist:       playlist,
		Progress:       progress.CalculatePlaylistProgress(playlist, h),
		LastCompletion: progress.GetPlaylistLastCompletion(playlist, h),
	}, nil
}

// Snapshot returns the stored snapshot when it was computed on today's date.
// Missing or older snapshots are recomputed at today, since the current
// streak and the week move with the calendar even without new sessions.
func (s *ProgressService) Snapshot(ctx context.Context, userID string, today time.Time) (*domain.ProgressSnapshot, error) {
	snap, err := s.snapshots.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		if domain.NewDateKey(snap.UpdatedAt.In(today.Location())) == domain.NewDateKey(today) {
			return snap, nil
		}
	case !errors.Is(err, domain.ErrSnapshotNotFound):
		return nil, fmt.Errorf("progress service: failed to load snapshot: %w", err)
	}

	h, err := s.history.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	return progress.BuildSnapshot(userID, h, today, s.granularity), nil
}
