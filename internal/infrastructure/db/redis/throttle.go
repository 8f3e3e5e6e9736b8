package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 10
	defaultWindow      = 15 * time.Minute
)

// LoginThrottle counts failed login attempts per identifier in Redis.
// Key format: login_failures:<identifier>
type LoginThrottle struct {
	client      *redis.Client
	maxFailures int64
	window      time.Duration
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
// Non-positive limits fall back to the defaults.
func NewLoginThrottle(client *redis.Client, maxFailures int, window time.Duration) *LoginThrottle {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginThrottle{client: client, maxFailures: int64(maxFailures), window: window}
}

// Allow reports whether the identifier is still under its failure limit.
func (t *LoginThrottle) Allow(ctx context.Context, identifier string) (bool, error) {
	n, err := t.client.Get(ctx, t.key(identifier)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("throttle check: %w", err)
	}
	return n < t.maxFailures, nil
}

// RecordFailure bumps the failure counter; the window restarts on each miss.
func (t *LoginThrottle) RecordFailure(ctx context.Context, identifier string) error {
	key := t.key(identifier)
	pipe := t.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, t.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("throttle record: %w", err)
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, identifier string) error {
	return t.client.Del(ctx, t.key(identifier)).Err()
}

func (t *LoginThrottle) key(identifier string) string {
	return fmt.Sprintf("login_failures:%s", identifier)
}
