package domain

type Streaks struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

type PlaylistStats struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

type LastCompletion struct {
	Date               DateKey `json:"date"`
	CompletedExercises int     `json:"completed_exercises"`
	TotalExercises     int     `json:"total_exercises"`
}

type PlaylistCard struct {
	Playlist       Playlist        `json:"playlist"`
	Progress       PlaylistStats   `json:"progress"`
	LastCompletion *LastCompletion `json:"last_completion"`
}

type Dashboard struct {
	Today               DateKey        `json:"today"`
	Week                int            `json:"week"`
	SuggestedPlaylistID string         `json:"suggested_playlist_id"`
	Streaks             Streaks        `json:"streaks"`
	Playlists           []PlaylistCard `json:"playlists"`
}

// SessionStat is one playlist's share of a day in the activity feed.
type SessionStat struct {
	PlaylistID         string `json:"playlist_id"`
	Title              string `json:"title"`
	ExercisesCompleted int    `json:"exercises_completed"`
	TotalExercises     int    `json:"total_exercises"`
}

type ActivityItem struct {
	Date     DateKey       `json:"date"`
	Sessions []SessionStat `json:"sessions"`
}

type Overview struct {
	Today               DateKey        `json:"today"`
	TotalDays           int            `json:"total_days"`
	Week                int            `json:"week"`
	Streaks             Streaks        `json:"streaks"`
	Granularity         string         `json:"granularity"`
	SuggestedPlaylistID string         `json:"suggested_playlist_id"`
	RecentActivity      []ActivityItem `json:"recent_activity"`
}

type MonthCalendar struct {
	Year  int       `json:"year"`
	Month int       `json:"month"`
	Dates []DateKey `json:"dates"`
}
