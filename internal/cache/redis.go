package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// RedisStore shares entries between every process pointed at the same
// server.
type RedisStore struct {
	client         *redis.Client
	defaultTimeout time.Duration
}

// NewRedisStore does not dial; the client connects on first use and keeps
// reconnecting, so a server that is down at boot only costs cache misses.
func NewRedisStore(opts RedisOptions, defaultTimeout time.Duration) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	return &RedisStore{client: client, defaultTimeout: defaultTimeout}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss
		}
		return nil, err
	}
	return data, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = s.defaultTimeout
	}
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, key).Err()
}

func (s *RedisStore) DefaultTimeout() time.Duration {
	return s.defaultTimeout
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
