package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestLimiter(t *testing.T, cfg Config) (*miniredis.Miniredis, *Limiter) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return mr, New(client, "pc", cfg)
}

func TestLookupBudgetEnforced(t *testing.T) {
	_, limiter := newTestLimiter(t, Config{
		MaxLookupsPerWindow: 3,
		Window:              time.Minute,
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := limiter.CheckLookup(ctx); err != nil {
			t.Fatalf("lookup %d unexpectedly throttled: %v", i, err)
		}
	}

	if err := limiter.CheckLookup(ctx); !errors.Is(err, ErrThrottled) {
		t.Fatalf("expected ErrThrottled, got %v", err)
	}
}

func TestLookupBudgetResetsAfterWindow(t *testing.T) {
	mr, limiter := newTestLimiter(t, Config{
		MaxLookupsPerWindow: 1,
		Window:              time.Minute,
	})
	ctx := context.Background()

	if err := limiter.CheckLookup(ctx); err != nil {
		t.Fatalf("first lookup throttled: %v", err)
	}
	if err := limiter.CheckLookup(ctx); !errors.Is(err, ErrThrottled) {
		t.Fatalf("expected ErrThrottled, got %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if err := limiter.CheckLookup(ctx); err != nil {
		t.Fatalf("expected budget reset after window, got %v", err)
	}
}

func TestFailureBackoffEngagesAfterThreshold(t *testing.T) {
	_, limiter := newTestLimiter(t, Config{
		MaxConsecutiveFailures: 2,
		FailureCooldown:        time.Minute,
	})
	ctx := context.Background()

	if err := limiter.CheckLookup(ctx); err != nil {
		t.Fatalf("unexpected throttle: %v", err)
	}

	if err := limiter.RecordFailure(ctx); err != nil {
		t.Fatalf("RecordFailure failed: %v", err)
	}
	if err := limiter.CheckLookup(ctx); err != nil {
		t.Fatalf("expected one failure to be tolerated, got %v", err)
	}

	if err := limiter.RecordFailure(ctx); err != nil {
		t.Fatalf("RecordFailure failed: %v", err)
	}
	if err := limiter.CheckLookup(ctx); !errors.Is(err, ErrThrottled) {
		t.Fatalf("expected ErrThrottled after threshold, got %v", err)
	}
}

func TestFailureBackoffClearsOnSuccess(t *testing.T) {
	_, limiter := newTestLimiter(t, Config{
		MaxConsecutiveFailures: 1,
		FailureCooldown:        time.Minute,
	})
	ctx := context.Background()

	if err := limiter.RecordFailure(ctx); err != nil {
		t.Fatalf("RecordFailure failed: %v", err)
	}
	if err := limiter.CheckLookup(ctx); !errors.Is(err, ErrThrottled) {
		t.Fatalf("expected ErrThrottled, got %v", err)
	}

	if err := limiter.RecordSuccess(ctx); err != nil {
		t.Fatalf("RecordSuccess failed: %v", err)
	}
	if err := limiter.CheckLookup(ctx); err != nil {
		t.Fatalf("expected success to clear backoff, got %v", err)
	}
}

func TestFailureBackoffExpiresAfterCooldown(t *testing.T) {
	mr, limiter := newTestLimiter(t, Config{
		MaxConsecutiveFailures: 1,
		FailureCooldown:        time.Minute,
	})
	ctx := context.Background()

	if err := limiter.RecordFailure(ctx); err != nil {
		t.Fatalf("RecordFailure failed: %v", err)
	}
	if err := limiter.CheckLookup(ctx); !errors.Is(err, ErrThrottled) {
		t.Fatalf("expected ErrThrottled, got %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if err := limiter.CheckLookup(ctx); err != nil {
		t.Fatalf("expected cooldown expiry to clear backoff, got %v", err)
	}
}

func TestFailureCountReads(t *testing.T) {
	_, limiter := newTestLimiter(t, Config{
		MaxConsecutiveFailures: 5,
		FailureCooldown:        time.Minute,
	})
	ctx := context.Background()

	count, err := limiter.FailureCount(ctx)
	if err != nil {
		t.Fatalf("FailureCount failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0, got %d", count)
	}

	_ = limiter.RecordFailure(ctx)
	_ = limiter.RecordFailure(ctx)

	count, err = limiter.FailureCount(ctx)
	if err != nil {
		t.Fatalf("FailureCount failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2, got %d", count)
	}
}

func TestDisabledMechanismsNeverThrottle(t *testing.T) {
	_, limiter := newTestLimiter(t, Config{})
	ctx := context.Background()

	for i := 0; i < 100; i++ {
		if err := limiter.CheckLookup(ctx); err != nil {
			t.Fatalf("expected disabled limiter to pass, got %v", err)
		}
	}
	if err := limiter.RecordFailure(ctx); err != nil {
		t.Fatalf("RecordFailure failed: %v", err)
	}
	if err := limiter.RecordSuccess(ctx); err != nil {
		t.Fatalf("RecordSuccess failed: %v", err)
	}
}

func TestRedisDownWrapsErrRedisUnavailable(t *testing.T) {
	mr, limiter := newTestLimiter(t, Config{
		MaxLookupsPerWindow:    1,
		Window:                 time.Minute,
		MaxConsecutiveFailures: 1,
		FailureCooldown:        time.Minute,
	})
	mr.Close()

	if err := limiter.CheckLookup(context.Background()); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
}
