package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	store := NewRedisStore(RedisOptions{Addr: mr.Addr()}, time.Minute)
	require.NoError(t, store.Ping(context.Background()))
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestRedisStore(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, store.Set(ctx, "k", []byte("v"), 10*time.Second))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
	assert.Equal(t, 10*time.Second, mr.TTL("k"))

	mr.FastForward(11 * time.Second)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrMiss)

	require.NoError(t, store.Set(ctx, "d", []byte("v"), 0))
	assert.Equal(t, time.Minute, mr.TTL("d"))
	require.NoError(t, store.Delete(ctx, "d"))
	_, err = store.Get(ctx, "d")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestRedisStoreUnavailable(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()
	_, err := store.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)
}

func TestRedisStoreServerDownAtBoot(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.Close()
	store := NewRedisStore(RedisOptions{Addr: mr.Addr()}, time.Minute)
	t.Cleanup(func() { store.Close() })
	ctx := context.Background()

	assert.Error(t, store.Ping(ctx))
	_, err := store.Get(ctx, "k")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)

	require.NoError(t, mr.Restart())
	require.Eventually(t, func() bool {
		return store.Ping(ctx) == nil
	}, 5*time.Second, 50*time.Millisecond)
	require.NoError(t, store.Set(ctx, "k", []byte("v"), 0))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}
