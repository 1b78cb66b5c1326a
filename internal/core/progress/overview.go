package progress

import (
	"fmt"
	"strings"
	"time"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

const RecentActivityLimit = 7

// SuggestedPlaylistID picks the playlist matching the program phase.
func SuggestedPlaylistID(week int) string {
	if week <= LastBeginnerWeek {
		return domain.BeginnerPlaylistID
	}
	return domain.AdvancedPlaylistID
}

// SessionStats lists, in catalog order, the playlists with at least one
// completed exercise on that day.
func SessionStats(playlists []domain.Playlist, day domain.DayProgress) []domain.SessionStat {
	stats := []domain.SessionStat{}
	for _, p := range playlists {
		completed := CountCompletedExercises(p, day[p.ID])
		if completed == 0 {
			continue
		}
		stats = append(stats, domain.SessionStat{
			PlaylistID:         p.ID,
			Title:              p.Title,
			ExercisesCompleted: completed,
			TotalExercises:     p.TotalExercises(),
		})
	}
	return stats
}

// RecentActivity returns up to limit recorded days, newest first.
func RecentActivity(playlists []domain.Playlist, history domain.CompletionHistory, limit int) []domain.ActivityItem {
	dates := history.SortedDates()
	items := []domain.ActivityItem{}
	for i := len(dates) - 1; i >= 0 && len(items) < limit; i-- {
		items = append(items, domain.ActivityItem{
			Date:     dates[i],
			Sessions: SessionStats(playlists, history[dates[i]]),
		})
	}
	return items
}

func TotalWorkoutDays(history domain.CompletionHistory) int {
	return len(history.SortedDates())
}

// WorkoutDatesForMonth returns the recorded days of one calendar month, ascending.
func WorkoutDatesForMonth(history domain.CompletionHistory, year int, month time.Month) []domain.DateKey {
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))

	dates := []domain.DateKey{}
	for _, d := range history.SortedDates() {
		if strings.HasPrefix(d.String(), prefix) {
			dates = append(dates, d)
		}
	}
	return dates
}

func BuildSnapshot(userID string, history domain.CompletionHistory, today time.Time, g Granularity) *domain.ProgressSnapshot {
	streaks := StreaksFor(g, history, today)
	return &domain.ProgressSnapshot{
		UserID:        userID,
		Week:          CalculateUserWeek(history, today),
		CurrentStreak: streaks.Current,
		LongestStreak: streaks.Longest,
		TotalDays:     TotalWorkoutDays(history),
		Granularity:   string(g),
		UpdatedAt:     time.Now().UTC(),
	}
}

func BuildOverview(playlists []domain.Playlist, history domain.CompletionHistory, today time.Time, g Granularity) domain.Overview {
	week := CalculateUserWeek(history, today)
	return domain.Overview{
		Today:               domain.NewDateKey(today),
		TotalDays:           TotalWorkoutDays(history),
		Week:                week,
		Streaks:             StreaksFor(g, history, today),
		Granularity:         string(g),
		SuggestedPlaylistID: SuggestedPlaylistID(week),
		RecentActivity:      RecentActivity(playlists, history, RecentActivityLimit),
	}
}

func BuildDashboard(playlists []domain.Playlist, history domain.CompletionHistory, today time.Time, g Granularity) domain.Dashboard {
	week := CalculateUserWeek(history, today)

	cards := make([]domain.PlaylistCard, 0, len(playlists))
	for _, p := range playlists {
		cards = append(cards, domain.PlaylistCard{
			Playlist:       p,
			Progress:       CalculatePlaylistProgress(p, history),
			LastCompletion: GetPlaylistLastCompletion(p, history),
		})
	}

	return domain.Dashboard{
		Today:               domain.NewDateKey(today),
		Week:                week,
		SuggestedPlaylistID: SuggestedPlaylistID(week),
		Streaks:             StreaksFor(g, history, today),
		Playlists:           cards,
	}
}
