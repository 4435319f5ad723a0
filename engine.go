package goPassCheck

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/MrEthical07/goPassCheck/hibp"
	"github.com/MrEthical07/goPassCheck/internal"
	"github.com/MrEthical07/goPassCheck/internal/cache"
	"github.com/MrEthical07/goPassCheck/internal/rate"
	"github.com/MrEthical07/goPassCheck/strength"
	"github.com/google/uuid"
	"golang.org/x/text/message"
)

// Engine defines a public type used by goPassCheck APIs.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config  Config
	client  *hibp.Client
	cache   *cache.Store
	limiter *rate.Limiter
	audit   *auditDispatcher
	metrics *Metrics
	printer *message.Printer
}

// Close describes the close operation and its observable behavior.
//
// Close may return an error when input validation, dependency calls, or security checks fail.
// Close does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
//
// AuditDropped may return an error when input validation, dependency calls, or security checks fail.
// AuditDropped does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
//
// MetricsSnapshot may return an error when input validation, dependency calls, or security checks fail.
// MetricsSnapshot does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// ScorePassword describes the scorepassword operation and its observable behavior.
//
// ScorePassword may return an error when input validation, dependency calls, or security checks fail.
// ScorePassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) ScorePassword(password string) ScoreResult {
	res := strength.Score(password)

	suggestions := res.Suggestions
	if e != nil {
		if max := e.config.Strength.MaxSuggestions; max > 0 && len(suggestions) > max {
			suggestions = suggestions[:max]
		}
	}

	e.metricInc(MetricScorePublished)

	return ScoreResult{
		Score:       res.Score,
		Suggestions: suggestions,
	}
}

// CheckPassword describes the checkpassword operation and its observable behavior.
//
// CheckPassword may return an error when input validation, dependency calls, or security checks fail.
// CheckPassword does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) CheckPassword(ctx context.Context, password string) (CheckResult, error) {
	if e == nil || e.client == nil {
		return CheckResult{}, ErrEngineNotReady
	}
	if ctx == nil {
		ctx = context.Background()
	}

	checkID := uuid.NewString()
	score := e.ScorePassword(password)

	// Empty input is "nothing to check", not a failed check.
	if password == "" {
		e.metricInc(MetricCheckSkippedEmpty)
		return CheckResult{
			CheckID: checkID,
			Score:   score,
			Breach:  BreachResult{Status: StatusUnknown},
		}, nil
	}

	breach := e.lookupBreach(ctx, checkID, password)

	return CheckResult{
		CheckID: checkID,
		Score:   score,
		Breach:  breach,
		Message: e.breachMessageFor(ctx, breach.Status, breach.Count),
	}, nil
}

// lookupBreach runs the full lookup pipeline for one non-empty password:
// digest split, throttle check, range cache, wire fetch, suffix match. Every
// failure mode degrades to an advisory status; nothing here returns an error
// or panics into the caller.
func (e *Engine) lookupBreach(ctx context.Context, checkID, password string) (result BreachResult) {
	defer func() {
		if r := recover(); r != nil {
			log.Print("goPassCheck: breach lookup panic recovered")
			e.metricInc(MetricLookupError)
			e.emitAudit(ctx, auditEventLookupError, false, checkID, "", ErrLookupUnavailable, func() map[string]string {
				return map[string]string{
					"reason": "panic",
				}
			})
			result = BreachResult{Status: StatusError}
		}
	}()

	prefix, suffix, err := internal.SplitDigest(internal.SHA1Hex(password))
	if err != nil {
		e.metricInc(MetricLookupError)
		e.emitAudit(ctx, auditEventLookupError, false, checkID, "", ErrInvalidDigest, func() map[string]string {
			return map[string]string{
				"reason": "digest_split_failed",
			}
		})
		return BreachResult{Status: StatusError}
	}

	if e.limiter != nil {
		if err := e.limiter.CheckLookup(ctx); err != nil {
			if errors.Is(err, rate.ErrThrottled) {
				e.metricInc(MetricLookupThrottled)
				e.emitAudit(ctx, auditEventLookupThrottled, false, checkID, prefix, ErrLookupThrottled, nil)
				return BreachResult{Status: StatusUnavailable}
			}
			// Throttle state is advisory; Redis trouble fails open.
			log.Print("goPassCheck: lookup throttle check failed")
		}
	}

	body := ""
	fromCache := false
	if e.cache != nil {
		cached, ok, err := e.cache.GetRange(ctx, prefix)
		switch {
		case err != nil:
			log.Print("goPassCheck: range cache read failed")
		case ok:
			body = cached
			fromCache = true
			e.metricInc(MetricCacheHit)
		default:
			e.metricInc(MetricCacheMiss)
		}
	}

	if !fromCache {
		e.metricInc(MetricLookupIssued)
		e.emitAudit(ctx, auditEventLookupIssued, true, checkID, prefix, nil, nil)

		start := time.Now()
		fetched, err := e.client.FetchRange(ctx, prefix)
		if e.metrics != nil && e.metrics.LatencyEnabled() {
			e.metrics.Observe(MetricLookupLatency, time.Since(start))
		}
		if err != nil {
			if e.limiter != nil {
				if recErr := e.limiter.RecordFailure(ctx); recErr != nil {
					log.Print("goPassCheck: lookup failure record failed")
				}
			}
			e.metricInc(MetricLookupUnavailable)
			e.emitAudit(ctx, auditEventLookupUnavailable, false, checkID, prefix, err, nil)
			return BreachResult{Status: StatusUnavailable}
		}
		if e.limiter != nil {
			if recErr := e.limiter.RecordSuccess(ctx); recErr != nil {
				log.Print("goPassCheck: lookup success record failed")
			}
		}

		body = fetched
		if e.cache != nil {
			// Cache write is best-effort and must not fail the lookup.
			if err := e.cache.SetRange(ctx, prefix, body, e.config.Cache.TTL); err != nil {
				log.Print("goPassCheck: range cache write failed")
			}
		}
	}

	count, found := hibp.MatchSuffix(body, suffix)
	if found {
		e.metricInc(MetricLookupFound)
		e.emitAudit(ctx, auditEventLookupFound, true, checkID, prefix, nil, nil)
		return BreachResult{Status: StatusFound, Count: count}
	}

	e.metricInc(MetricLookupNotFound)
	e.emitAudit(ctx, auditEventLookupNotFound, true, checkID, prefix, nil, nil)
	return BreachResult{Status: StatusNotFound}
}

func (e *Engine) breachMessageFor(ctx context.Context, status BreachStatus, count int) string {
	printer := e.printer
	if locale := localeFromContext(ctx); locale != "" {
		printer = newMessagePrinter(locale)
	}
	if printer == nil {
		printer = newMessagePrinter("en")
	}
	return breachMessage(printer, status, count)
}

func (e *Engine) emitAudit(
	ctx context.Context,
	eventType string,
	success bool,
	checkID string,
	prefix string,
	err error,
	metadataBuilder func() map[string]string,
) {
	if e == nil || e.audit == nil {
		return
	}

	var metadata map[string]string
	if metadataBuilder != nil {
		metadata = metadataBuilder()
	}

	event := AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		CheckID:   checkID,
		Prefix:    prefix,
		Success:   success,
		Metadata:  metadata,
	}
	if err != nil {
		event.Error = err.Error()
	}

	e.audit.Emit(ctx, event)
}
