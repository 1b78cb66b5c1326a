package domain

import "context"

type SessionRepository interface {
	// FetchHistory returns every session of the user ordered by date ascending.
	FetchHistory(ctx context.Context, userID string) ([]*DaySession, error)

	// FetchDay returns the session for one date or ErrSessionNotFound.
	FetchDay(ctx context.Context, userID string, date DateKey) (*DaySession, error)

	// Upsert writes the session. A second write for the same (user, date)
	// replaces the stored progress; the last writer wins.
	Upsert(ctx context.Context, session *DaySession) error
}
