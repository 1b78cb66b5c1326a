package progress

import (
	"math"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

// Percentage rounds completed/total to a whole percent. An empty total is 0%.
func Percentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// CountCompletedExercises counts the playlist's exercises with at least one
// set done. Entries for exercises the playlist does not contain are ignored.
func CountCompletedExercises(playlist domain.Playlist, progress domain.PlaylistProgress) int {
	if len(progress) == 0 {
		return 0
	}

	completed := 0
	for _, ex := range playlist.Exercises {
		if rec, ok := progress[ex.ID]; ok && rec.IsComplete() {
			completed++
		}
	}
	return completed
}

func CalculateDayProgress(playlist domain.Playlist, day domain.DayProgress) domain.PlaylistStats {
	total := playlist.TotalExercises()
	completed := CountCompletedExercises(playlist, day[playlist.ID])
	return domain.PlaylistStats{
		Completed:  completed,
		Total:      total,
		Percentage: Percentage(completed, total),
	}
}

// GetPlaylistLastCompletion returns the most recent day with a completed
// exercise of the playlist, or nil when there is none.
func GetPlaylistLastCompletion(playlist domain.Playlist, history domain.CompletionHistory) *domain.LastCompletion {
	dates := history.SortedDates()
	for i := len(dates) - 1; i >= 0; i-- {
		completed := CountCompletedExercises(playlist, history[dates[i]][playlist.ID])
		if completed == 0 {
			continue
		}
		return &domain.LastCompletion{
			Date:               dates[i],
			CompletedExercises: completed,
			TotalExercises:     playlist.TotalExercises(),
		}
	}
	return nil
}

// CalculatePlaylistProgress reports the playlist's stats on its latest day
// with any completion.
func CalculatePlaylistProgress(playlist domain.Playlist, history domain.CompletionHistory) domain.PlaylistStats {
	total := playlist.TotalExercises()

	last := GetPlaylistLastCompletion(playlist, history)
	if last == nil {
		return domain.PlaylistStats{Completed: 0, Total: total, Percentage: 0}
	}

	return domain.PlaylistStats{
		Completed:  last.CompletedExercises,
		Total:      total,
		Percentage: Percentage(last.CompletedExercises, total),
	}
}
