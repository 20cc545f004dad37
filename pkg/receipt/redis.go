package receipt

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces receipt keys in a shared Redis database.
const DefaultRedisPrefix = "chute:receipt:"

// RedisStore keeps receipts in Redis. Receipts do not expire.
type RedisStore struct {
	redis  *redis.Client
	prefix string
}

// NewRedisStore creates a store on redisClient. An empty prefix selects
// DefaultRedisPrefix.
func NewRedisStore(redisClient *redis.Client, prefix string) *RedisStore {
	if redisClient == nil {
		panic("redis client cannot be nil")
	}
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{redis: redisClient, prefix: prefix}
}

// Name returns "redis".
func (s *RedisStore) Name() string { return "redis" }

func (s *RedisStore) key(k Key) string {
	return s.prefix + k.String()
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, key Key) (string, bool, error) {
	id, err := s.redis.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			observe(s.Name(), "get", nil)
			return "", false, nil
		}
		observe(s.Name(), "get", err)
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	observe(s.Name(), "get", nil)
	return id, true, nil
}

// Set implements Store.
func (s *RedisStore) Set(ctx context.Context, key Key, id string) error {
	if err := checkSet(key, id); err != nil {
		observe(s.Name(), "set", err)
		return err
	}
	if err := s.redis.Set(ctx, s.key(key), id, 0).Err(); err != nil {
		observe(s.Name(), "set", err)
		return fmt.Errorf("redis set: %w", err)
	}
	observe(s.Name(), "set", nil)
	return nil
}

// Remove implements Store.
func (s *RedisStore) Remove(ctx context.Context, key Key) error {
	if err := s.redis.Del(ctx, s.key(key)).Err(); err != nil {
		observe(s.Name(), "remove", err)
		return fmt.Errorf("redis del: %w", err)
	}
	observe(s.Name(), "remove", nil)
	return nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.redis.Close()
}
