package receipt

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendPebble = "pebble"
)

// Options selects and configures a backend.
type Options struct {
	Backend string

	RedisAddr   string
	RedisDB     int
	RedisPrefix string

	PebblePath string
}

// Open creates the backend named by opts.Backend. Redis connectivity is
// checked with a ping.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryStore(), nil

	case BackendRedis:
		if opts.RedisAddr == "" {
			return nil, fmt.Errorf("redis address is required")
		}
		client := redis.NewClient(&redis.Options{
			Addr: opts.RedisAddr,
			DB:   opts.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis ping: %w", err)
		}
		return NewRedisStore(client, opts.RedisPrefix), nil

	case BackendPebble:
		store, err := OpenPebbleStore(opts.PebblePath)
		if err != nil {
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown receipt backend %q (want memory, redis or pebble)", opts.Backend)
	}
}
