package cache

import (
	"context"
	"errors"
	"time"

	"github.com/coocood/freecache"
)

const minLocalCacheBytes = 512 * 1024

// LocalStore keeps entries in process memory. It backs single-node
// deployments where redis is disabled.
type LocalStore struct {
	cache *freecache.Cache
}

var _ Store = (*LocalStore)(nil)

func NewLocalStore(sizeMB int) *LocalStore {
	size := sizeMB * 1024 * 1024
	if size < minLocalCacheBytes {
		size = minLocalCacheBytes
	}
	return &LocalStore{cache: freecache.NewCache(size)}
}

func (s *LocalStore) Get(_ context.Context, key string) ([]byte, error) {
	val, err := s.cache.Get([]byte(key))
	if errors.Is(err, freecache.ErrNotFound) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return val, nil
}

func (s *LocalStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	expire := int(ttl / time.Second)
	if ttl > 0 && expire == 0 {
		expire = 1
	}
	return s.cache.Set([]byte(key), value, expire)
}

func (s *LocalStore) Del(_ context.Context, key string) error {
	s.cache.Del([]byte(key))
	return nil
}

func (s *LocalStore) EntryCount() int64 {
	return s.cache.EntryCount()
}
