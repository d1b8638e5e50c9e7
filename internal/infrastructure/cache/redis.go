package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cabfare/backend/internal/domain"
)

const keyPrefix = "cabfare:comparison:"

// RedisStore keeps comparisons in Redis with a per-key expiry
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisStoreFromURL connects to Redis using a redis:// URL and pings it
func NewRedisStoreFromURL(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStore(client), nil
}

// Save stores a comparison under its ID until ttl elapses
func (s *RedisStore) Save(ctx context.Context, result *domain.ComparisonResult, ttl time.Duration) error {
	if result == nil || result.ID == "" {
		return domain.ErrInvalidRequest
	}
	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode comparison: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+result.ID, encoded, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Get retrieves a comparison; missing or expired keys read as not found
func (s *RedisStore) Get(ctx context.Context, id string) (*domain.ComparisonResult, error) {
	raw, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrComparisonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var result domain.ComparisonResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode comparison: %w", err)
	}
	return &result, nil
}

// Delete removes a comparison
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
