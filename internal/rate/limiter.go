package rate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds lookup throttle tuning parameters.
type Config struct {
	MaxLookupsPerWindow    int
	Window                 time.Duration
	MaxConsecutiveFailures int
	FailureCooldown        time.Duration
}

// Limiter enforces the outbound lookup budget and the consecutive-failure
// backoff using Redis counters. Either mechanism is disabled by leaving its
// maximum at zero.
type Limiter struct {
	redis     redis.UniversalClient
	keyPrefix string
	config    Config
}

// New creates a lookup [Limiter] backed by the given Redis client.
func New(redisClient redis.UniversalClient, keyPrefix string, cfg Config) *Limiter {
	return &Limiter{
		redis:     redisClient,
		keyPrefix: keyPrefix,
		config:    cfg,
	}
}

// CheckLookup reserves one lookup in the current window and verifies the
// service is not in failure backoff. Returns ErrThrottled when either budget
// is exhausted.
func (l *Limiter) CheckLookup(ctx context.Context) error {
	if l.config.MaxConsecutiveFailures > 0 {
		failures, err := l.failureCount(ctx)
		if err != nil {
			return err
		}
		if failures >= int64(l.config.MaxConsecutiveFailures) {
			return ErrThrottled
		}
	}

	if l.config.MaxLookupsPerWindow > 0 {
		count, err := l.incrementWithTTL(ctx, l.budgetKey(), l.config.Window)
		if err != nil {
			return err
		}
		if count > int64(l.config.MaxLookupsPerWindow) {
			return ErrThrottled
		}
	}

	return nil
}

// RecordFailure records one failed lookup. Each failure refreshes the
// cooldown TTL, so backoff is measured from the most recent failure rather
// than the first.
func (l *Limiter) RecordFailure(ctx context.Context) error {
	if l.config.MaxConsecutiveFailures <= 0 {
		return nil
	}

	pipe := l.redis.TxPipeline()
	pipe.Incr(ctx, l.failureKey())
	pipe.Expire(ctx, l.failureKey(), l.config.FailureCooldown)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// RecordSuccess clears the consecutive-failure counter.
func (l *Limiter) RecordSuccess(ctx context.Context) error {
	if l.config.MaxConsecutiveFailures <= 0 {
		return nil
	}

	if err := l.redis.Del(ctx, l.failureKey()).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// FailureCount returns the current consecutive-failure counter.
// Missing keys return zero.
func (l *Limiter) FailureCount(ctx context.Context) (int, error) {
	count, err := l.failureCount(ctx)
	if err != nil {
		return 0, err
	}
	if count < 0 {
		return 0, nil
	}
	return int(count), nil
}

func (l *Limiter) failureCount(ctx context.Context) (int64, error) {
	count, err := l.redis.Get(ctx, l.failureKey()).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return count, nil
}

func (l *Limiter) incrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	// Fixed-window semantics: set TTL only for the first hit in the window.
	if count == 1 {
		if err := l.redis.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	return count, nil
}

func (l *Limiter) budgetKey() string {
	return l.keyPrefix + ":budget"
}

func (l *Limiter) failureKey() string {
	return l.keyPrefix + ":fail"
}
