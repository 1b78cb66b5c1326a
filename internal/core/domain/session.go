package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound   = errors.New("workout session not found")
	ErrInvalidSession    = errors.New("invalid workout session data")
	ErrEmptyProgress     = errors.New("progress payload is empty")
	ErrInvalidProgressDB = errors.New("cannot decode stored progress")
)

// PlaylistProgress maps an exercise id to what was done for it.
type PlaylistProgress map[string]SetRecord

// DayProgress maps a playlist id to its exercises' progress for one day.
type DayProgress map[string]PlaylistProgress

// Merge overlays other on top of p, exercise by exercise, and returns the
// result. Neither input is modified.
func (p DayProgress) Merge(other DayProgress) DayProgress {
	out := make(DayProgress, len(p)+len(other))
	for playlistID, exercises := range p {
		out[playlistID] = exercises.clone()
	}
	for playlistID, exercises := range other {
		merged, ok := out[playlistID]
		if !ok {
			merged = make(PlaylistProgress, len(exercises))
		}
		for exerciseID, rec := range exercises {
			merged[exerciseID] = rec
		}
		out[playlistID] = merged
	}
	return out
}

func (p PlaylistProgress) clone() PlaylistProgress {
	out := make(PlaylistProgress, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// HasCompletion reports whether any exercise of any playlist was done that day.
func (p DayProgress) HasCompletion() bool {
	for _, exercises := range p {
		for _, rec := range exercises {
			if rec.IsComplete() {
				return true
			}
		}
	}
	return false
}

func (p DayProgress) Value() (driver.Value, error) {
	if p == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (p *DayProgress) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	case nil:
		*p = DayProgress{}
		return nil
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidProgressDB, src)
	}

	out := DayProgress{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidProgressDB, err)
		}
	}
	*p = out
	return nil
}

// DaySession is the single progress row a user owns for a calendar date.
type DaySession struct {
	ID        string      `json:"id" db:"id"`
	UserID    string      `json:"user_id" db:"user_id"`
	Date      DateKey     `json:"session_date" db:"session_date"`
	Progress  DayProgress `json:"progress" db:"progress"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" db:"updated_at"`
}

func NewDaySession(userID string, date DateKey, progress DayProgress) *DaySession {
	now := time.Now().UTC()
	if progress == nil {
		progress = DayProgress{}
	}
	return &DaySession{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      date,
		Progress:  progress,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *DaySession) Validate() error {
	if strings.TrimSpace(s.UserID) == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidSession)
	}
	if !s.Date.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidSession, ErrInvalidDate)
	}
	return nil
}

// CompletionHistory is every recorded day of a user keyed by date.
type CompletionHistory map[DateKey]DayProgress

// NewCompletionHistory indexes sessions by date. When two rows share a date the
// first one is kept.
func NewCompletionHistory(sessions []*DaySession) CompletionHistory {
	h := make(CompletionHistory, len(sessions))
	for _, s := range sessions {
		if s == nil {
			continue
		}
		if _, exists := h[s.Date]; exists {
			continue
		}
		h[s.Date] = s.Progress
	}
	return h
}

// SortedDates returns the well-formed keys in ascending order.
func (h CompletionHistory) SortedDates() []DateKey {
	dates := make([]DateKey, 0, len(h))
	for d := range h {
		if d.Valid() {
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
	return dates
}
