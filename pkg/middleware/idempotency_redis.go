package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"salonbook/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const redisIdempotencyPrefix = "salonbook:idempotency:"

// RedisIdempotencyStore shares idempotency records between replicas. Redis
// failures degrade to a cache miss.
type RedisIdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewRedisIdempotencyStore(client *redis.Client, ttl time.Duration, log *logger.Logger) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client, ttl: ttl, log: log}
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) (*CachedResponse, bool) {
	data, err := s.client.Get(ctx, redisIdempotencyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("Idempotency lookup failed", "error", err)
		}
		return nil, false
	}

	var cached CachedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		s.log.Warn("Discarding unreadable idempotency record", "error", err)
		return nil, false
	}
	return &cached, true
}

func (s *RedisIdempotencyStore) Set(ctx context.Context, key string, response *CachedResponse) {
	response.CreatedAt = time.Now()
	data, err := json.Marshal(response)
	if err != nil {
		s.log.Warn("Failed to encode idempotency record", "error", err)
		return
	}
	if err := s.client.Set(ctx, redisIdempotencyPrefix+key, data, s.ttl).Err(); err != nil {
		s.log.Warn("Failed to store idempotency record", "error", err)
	}
}

// Stop is a no-op; the caller owns the Redis client.
func (s *RedisIdempotencyStore) Stop() {}
