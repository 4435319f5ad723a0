package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrRedisUnavailable wraps transport-level cache failures so callers can
// fail open without inspecting driver errors.
var ErrRedisUnavailable = errors.New("redis unavailable")

// Store caches raw range-response bodies keyed by prefix.
type Store struct {
	redis     redis.UniversalClient
	keyPrefix string
}

// New creates a range cache backed by the given Redis client.
func New(redisClient redis.UniversalClient, keyPrefix string) *Store {
	return &Store{
		redis:     redisClient,
		keyPrefix: keyPrefix,
	}
}

// GetRange returns the cached response body for a range prefix. A missing
// key is not an error; it reports ok=false.
func (s *Store) GetRange(ctx context.Context, prefix string) (string, bool, error) {
	body, err := s.redis.Get(ctx, s.rangeKey(prefix)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return body, true, nil
}

// SetRange stores a response body for a range prefix with the given TTL.
func (s *Store) SetRange(ctx context.Context, prefix, body string, ttl time.Duration) error {
	if err := s.redis.Set(ctx, s.rangeKey(prefix), body, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (s *Store) rangeKey(prefix string) string {
	return s.keyPrefix + ":range:" + prefix
}
