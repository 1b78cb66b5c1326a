package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
)

var (
	_ domain.SessionRepository  = (*InMemorySessionRepository)(nil)
	_ domain.UserRepository     = (*InMemoryUserRepository)(nil)
	_ domain.SnapshotRepository = (*InMemorySnapshotRepository)(nil)
)

type sessionKey struct {
	userID string
	date   domain.DateKey
}

type InMemorySessionRepository struct {
	store map[sessionKey]*domain.DaySession

	mu sync.RWMutex
}

func NewInMemorySessionRepository() *InMemorySessionRepository {
	return &InMemorySessionRepository{
		store: make(map[sessionKey]*domain.DaySession),
	}
}

func copySession(s *domain.DaySession) *domain.DaySession {
	cp := *s
	cp.Progress = domain.DayProgress{}.Merge(s.Progress)
	return &cp
}

func (r *InMemorySessionRepository) FetchHistory(ctx context.Context, userID string) ([]*domain.DaySession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sessions := []*domain.DaySession{}
	for k, s := range r.store {
		if k.userID == userID {
			sessions = append(sessions, copySession(s))
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Date < sessions[j].Date
	})

	return sessions, nil
}

func (r *InMemorySessionRepository) FetchDay(ctx context.Context, userID string, date domain.DateKey) (*domain.DaySession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.store[sessionKey{userID, date}]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return copySession(s), nil
}

func (r *InMemorySessionRepository) Upsert(ctx context.Context, s *domain.DaySession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := sessionKey{s.UserID, s.Date}
	stored := copySession(s)
	if existing, ok := r.store[key]; ok {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	}
	r.store[key] = stored
	return nil
}

type InMemoryUserRepository struct {
	byID map[string]*domain.User

	mu sync.RWMutex
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		byID: make(map[string]*domain.User),
	}
}

func (r *InMemoryUserRepository) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.byID {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}

	cp := *user
	r.byID[user.ID] = &cp
	return nil
}

func (r *InMemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.byID {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *InMemoryUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

type InMemorySnapshotRepository struct {
	store map[string]domain.ProgressSnapshot

	mu sync.RWMutex
}

func NewInMemorySnapshotRepository() *InMemorySnapshotRepository {
	return &InMemorySnapshotRepository{
		store: make(map[string]domain.ProgressSnapshot),
	}
}

func (r *InMemorySnapshotRepository) GetByUserID(ctx context.Context, userID string) (*domain.ProgressSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.store[userID]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return &s, nil
}

func (r *InMemorySnapshotRepository) Upsert(ctx context.Context, s *domain.ProgressSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[s.UserID] = *s
	return nil
}
