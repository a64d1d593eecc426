package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/lucasvsme/accountd/internal/usecase"
)

// Cache implements usecase.Cache using Redis. Calls go through a circuit
// breaker so a struggling Redis does not slow down every read; callers
// already treat cache errors as misses.
type Cache struct {
	client *redis.Client
	prefix string
	cb     *gobreaker.CircuitBreaker
}

// NewCache creates a new Cache.
func NewCache(client *redis.Client, logger zerolog.Logger) *Cache {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "account-cache",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("cache circuit breaker state changed")
		},
	})

	return &Cache{
		client: client,
		prefix: "cache:",
		cb:     cb,
	}
}

// Get retrieves a value by key. A missing key is reported as
// usecase.ErrCacheMiss and does not count against the breaker.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	result, err := c.cb.Execute(func() (interface{}, error) {
		data, err := c.client.Get(ctx, c.prefix+key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil, nil
			}

			return nil, err
		}

		return data, nil
	})
	if err != nil {
		return nil, err
	}

	data, ok := result.([]byte)
	if !ok || data == nil {
		return nil, usecase.ErrCacheMiss
	}

	return data, nil
}

// Set stores a value with TTL.
func (c *Cache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.client.Set(ctx, c.prefix+key, value, ttl).Err()
	})

	return err
}

// Delete removes a key.
func (c *Cache) Delete(ctx context.Context, key string) error {
	_, err := c.cb.Execute(func() (interface{}, error) {
		return nil, c.client.Del(ctx, c.prefix+key).Err()
	})

	return err
}
