package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-fit/internal/adapters/cache"
	"github.com/comitanigiacomo/kanso-fit/internal/core/domain"
	"github.com/comitanigiacomo/kanso-fit/internal/metrics"
)

var _ domain.SessionRepository = (*CachedSessionRepository)(nil)

// CachedSessionRepository keeps each user's full history in a cache and drops
// it on every write.
type CachedSessionRepository struct {
	next    domain.SessionRepository
	cache   cache.Store
	ttl     time.Duration
	metrics *metrics.Manager
}

func NewCachedSessionRepository(next domain.SessionRepository, store cache.Store, ttl time.Duration, m *metrics.Manager) *CachedSessionRepository {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &CachedSessionRepository{
		next:    next,
		cache:   store,
		ttl:     ttl,
		metrics: m,
	}
}

func (r *CachedSessionRepository) cacheKey(userID string) string {
	return fmt.Sprintf("history:%s", userID)
}

func (r *CachedSessionRepository) invalidate(ctx context.Context, userID string) {
	if err := r.cache.Del(ctx, r.cacheKey(userID)); err != nil {
		log.Warnf("[CACHE] failed to invalidate history for user %s: %v", userID, err)
	}
}

func (r *CachedSessionRepository) observe(result string) {
	if r.metrics != nil {
		r.metrics.CounterCacheLookups.WithLabelValues(result).Inc()
	}
}

func (r *CachedSessionRepository) FetchHistory(ctx context.Context, userID string) ([]*domain.DaySession, error) {
	key := r.cacheKey(userID)

	val, err := r.cache.Get(ctx, key)
	switch {
	case err == nil:
		var sessions []*domain.DaySession
		if err := json.Unmarshal(val, &sessions); err == nil {
			r.observe("hit")
			return sessions, nil
		}
		log.Warnf("[CACHE] corrupted history for user %s, cleaning up key", userID)
		r.observe("corrupt")
		r.invalidate(ctx, userID)
	case errors.Is(err, cache.ErrCacheMiss):
		r.observe("miss")
	default:
		log.Errorf("[CACHE] read error: %v", err)
		r.observe("error")
	}

	sessions, err := r.next.FetchHistory(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(sessions); err == nil {
		if setErr := r.cache.Set(ctx, key, data, r.ttl); setErr != nil {
			log.Errorf("[CACHE] set error: %v", setErr)
		}
	}

	return sessions, nil
}

func (r *CachedSessionRepository) FetchDay(ctx context.Context, userID string, date domain.DateKey) (*domain.DaySession, error) {
	return r.next.FetchDay(ctx, userID, date)
}

func (r *CachedSessionRepository) Upsert(ctx context.Context, s *domain.DaySession) error {
	if err := r.next.Upsert(ctx, s); err != nil {
		return err
	}
	r.invalidate(ctx, s.UserID)
	return nil
}
