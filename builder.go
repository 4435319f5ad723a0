package goPassCheck

import (
	"errors"
	"net/http"

	"github.com/MrEthical07/goPassCheck/hibp"
	"github.com/MrEthical07/goPassCheck/internal/cache"
	"github.com/MrEthical07/goPassCheck/internal/rate"
	"github.com/redis/go-redis/v9"
)

// Builder defines a public type used by goPassCheck APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config
	redis  *redis.Client

	httpClient *http.Client
	auditSink  AuditSink

	built bool
}

// New describes the new operation and its observable behavior.
//
// New may return an error when input validation, dependency calls, or security checks fail.
// New does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
//
// WithConfig may return an error when input validation, dependency calls, or security checks fail.
// WithConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis may return an error when input validation, dependency calls, or security checks fail.
// WithRedis does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
//
// WithHTTPClient may return an error when input validation, dependency calls, or security checks fail.
// WithHTTPClient does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithAuditSink describes the withauditsink operation and its observable behavior.
//
// WithAuditSink may return an error when input validation, dependency calls, or security checks fail.
// WithAuditSink does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
//
// WithMetricsEnabled may return an error when input validation, dependency calls, or security checks fail.
// WithMetricsEnabled does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms describes the withlatencyhistograms operation and its observable behavior.
//
// WithLatencyHistograms may return an error when input validation, dependency calls, or security checks fail.
// WithLatencyHistograms does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build may return an error when input validation, dependency calls, or security checks fail.
// Build does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.redis == nil {
		if cfg.Cache.Enabled {
			return nil, errors.New("Cache requires redis client")
		}
		if cfg.Backoff.Enabled {
			return nil, errors.New("Backoff requires redis client")
		}
	}

	// -------- WIRE CLIENT --------
	client, err := hibp.NewClient(hibp.Config{
		BaseURL:        cfg.Lookup.BaseURL,
		RequestTimeout: cfg.Lookup.RequestTimeout,
		UserAgent:      cfg.Lookup.UserAgent,
		AddPadding:     cfg.Lookup.AddPadding,
		HTTPClient:     b.httpClient,
	})
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config: cfg,
		client: client,
	}

	if cfg.Cache.Enabled {
		engine.cache = cache.New(b.redis, cfg.Cache.RedisPrefix)
	}
	if cfg.Backoff.Enabled {
		engine.limiter = rate.New(b.redis, cfg.Backoff.RedisPrefix, rate.Config{
			MaxLookupsPerWindow:    cfg.Backoff.MaxLookupsPerWindow,
			Window:                 cfg.Backoff.Window,
			MaxConsecutiveFailures: cfg.Backoff.MaxConsecutiveFailures,
			FailureCooldown:        cfg.Backoff.FailureCooldown,
		})
	}

	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)
	engine.printer = newMessagePrinter(cfg.Messages.Locale)

	b.built = true

	return engine, nil
}
