package middleware

import (
	"net/http"
	"testing"
	"time"

	"salonbook/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, ttl time.Duration) (*RedisIdempotencyStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisIdempotencyStore(client, ttl, logger.NewNop()), mr
}

func TestRedisIdempotencyStore_RoundTrip(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	ctx := t.Context()

	_, found := store.Get(ctx, "missing")
	assert.False(t, found)

	store.Set(ctx, "/api/bookings:k1", &CachedResponse{
		StatusCode: http.StatusOK,
		Headers:    http.Header{"Content-Type": {"application/json"}},
		Body:       []byte(`{"ok":true}`),
	})

	got, found := store.Get(ctx, "/api/bookings:k1")
	require.True(t, found)
	assert.Equal(t, http.StatusOK, got.StatusCode)
	assert.Equal(t, "application/json", got.Headers.Get("Content-Type"))
	assert.Equal(t, `{"ok":true}`, string(got.Body))

	assert.True(t, mr.Exists(redisIdempotencyPrefix+"/api/bookings:k1"))
	mr.FastForward(2 * time.Minute)
	_, found = store.Get(ctx, "/api/bookings:k1")
	assert.False(t, found)
}

func TestRedisIdempotencyStore_CorruptRecordIsMiss(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	require.NoError(t, mr.Set(redisIdempotencyPrefix+"bad", "not json"))

	_, found := store.Get(t.Context(), "bad")
	assert.False(t, found)
}

func TestRedisIdempotencyStore_ServerDownIsMiss(t *testing.T) {
	store, mr := newRedisStore(t, time.Minute)
	mr.Close()

	store.Set(t.Context(), "k", &CachedResponse{StatusCode: http.StatusOK})
	_, found := store.Get(t.Context(), "k")
	assert.False(t, found)
}
