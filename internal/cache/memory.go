package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore keeps entries in the current process only.
type MemoryStore struct {
	cache          *gocache.Cache
	defaultTimeout time.Duration
}

func NewMemoryStore(defaultTimeout, cleanupInterval time.Duration) *MemoryStore {
	return &MemoryStore{
		cache:          gocache.New(defaultTimeout, cleanupInterval),
		defaultTimeout: defaultTimeout,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := s.cache.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	return value.([]byte), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTimeout
	}
	s.cache.Set(key, value, ttl)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}

func (s *MemoryStore) DefaultTimeout() time.Duration {
	return s.defaultTimeout
}
