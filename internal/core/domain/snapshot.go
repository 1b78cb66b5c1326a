package domain

import (
	"context"
	"errors"
	"time"
)

var ErrSnapshotNotFound = errors.New("progress snapshot not found")

// ProgressSnapshot is the last computed summary of a user's program, kept so
// clients can read it without replaying the history.
type ProgressSnapshot struct {
	UserID        string    `json:"user_id" db:"user_id"`
	Week          int       `json:"week" db:"week"`
	CurrentStreak int       `json:"current_streak" db:"current_streak"`
	LongestStreak int       `json:"longest_streak" db:"longest_streak"`
	TotalDays     int       `json:"total_days" db:"total_days"`
	Granularity   string    `json:"granularity" db:"granularity"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// SameAs compares the computed figures, ignoring the timestamp.
func (s *ProgressSnapshot) SameAs(other *ProgressSnapshot) bool {
	if s == nil || other == nil {
		return s == other
	}
	return s.UserID == other.UserID &&
		s.Week == other.Week &&
		s.CurrentStreak == other.CurrentStreak &&
		s.LongestStreak == other.LongestStreak &&
		s.TotalDays == other.TotalDays &&
		s.Granularity == other.Granularity
}

type SnapshotRepository interface {
	GetByUserID(ctx context.Context, userID string) (*ProgressSnapshot, error)

	// Upsert stores the snapshot, replacing the previous one for the user.
	Upsert(ctx context.Context, snapshot *ProgressSnapshot) error
}
