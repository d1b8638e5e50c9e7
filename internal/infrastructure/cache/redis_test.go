package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabfare/backend/internal/domain"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStore(client)
	t.Cleanup(func() { _ = store.Close() })
	return store, mr
}

func TestRedisStore_SaveAndGet(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	want := testComparison("cmp-1")
	require.NoError(t, store.Save(ctx, want, 30*time.Minute))

	assert.True(t, mr.Exists("cabfare:comparison:cmp-1"))
	assert.Equal(t, 30*time.Minute, mr.TTL("cabfare:comparison:cmp-1"))

	got, err := store.Get(ctx, "cmp-1")
	require.NoError(t, err)
	assertSameComparison(t, want, got)
}

func TestRedisStore_Expiration(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testComparison("cmp-1"), time.Minute))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "cmp-1")
	assert.ErrorIs(t, err, domain.ErrComparisonNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testComparison("cmp-1"), time.Minute))
	require.NoError(t, store.Delete(ctx, "cmp-1"))

	_, err := store.Get(ctx, "cmp-1")
	assert.ErrorIs(t, err, domain.ErrComparisonNotFound)
}

func TestRedisStore_InvalidInput(t *testing.T) {
	store, _ := newTestRedisStore(t)

	assert.ErrorIs(t, store.Save(context.Background(), nil, time.Minute), domain.ErrInvalidRequest)
	assert.ErrorIs(t, store.Save(context.Background(), testComparison(""), time.Minute), domain.ErrInvalidRequest)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	store, mr := newTestRedisStore(t)
	require.NoError(t, mr.Set("cabfare:comparison:bad", "not json"))

	_, err := store.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrComparisonNotFound)
}

func TestNewRedisStoreFromURL(t *testing.T) {
	t.Run("connects", func(t *testing.T) {
		mr := miniredis.RunT(t)

		store, err := NewRedisStoreFromURL(context.Background(), "redis://"+mr.Addr())
		require.NoError(t, err)
		defer store.Close()

		require.NoError(t, store.Save(context.Background(), testComparison("cmp-1"), time.Minute))
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := NewRedisStoreFromURL(context.Background(), "http://not-redis")
		assert.Error(t, err)
	})

	t.Run("unreachable server", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_, err := NewRedisStoreFromURL(ctx, "redis://127.0.0.1:1")
		assert.Error(t, err)
	})
}
