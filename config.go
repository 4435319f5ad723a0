package goPassCheck

import (
	"errors"
	"net/url"
	"time"

	"golang.org/x/text/language"
)

// Config defines a public type used by goPassCheck APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Strength StrengthConfig
	Lookup   LookupConfig
	Debounce DebounceConfig
	Cache    CacheConfig
	Backoff  BackoffConfig
	Messages MessagesConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

/*
====================================
STRENGTH CONFIG
====================================
*/

// StrengthConfig defines a public type used by goPassCheck APIs.
//
// StrengthConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type StrengthConfig struct {
	// MaxSuggestions caps how many improvement suggestions are surfaced to
	// the sink. The current rule set emits at most 5; the cap is a contract
	// that survives rule extensions.
	MaxSuggestions int
}

/*
====================================
LOOKUP CONFIG
====================================
*/

// LookupConfig defines a public type used by goPassCheck APIs.
//
// LookupConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type LookupConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	UserAgent      string
	// AddPadding asks the range endpoint to pad responses with zero-count
	// lines so response size does not leak prefix popularity.
	AddPadding bool
}

/*
====================================
DEBOUNCE CONFIG
====================================
*/

// DebounceConfig defines a public type used by goPassCheck APIs.
//
// DebounceConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type DebounceConfig struct {
	// QuietPeriod is how long the input must stay unchanged before a lookup
	// is issued. Any keystroke inside the window restarts it.
	QuietPeriod time.Duration
	InputBuffer int
}

// CacheConfig defines a public type used by goPassCheck APIs.
//
// CacheConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CacheConfig struct {
	Enabled     bool
	RedisPrefix string
	TTL         time.Duration
}

// BackoffConfig defines a public type used by goPassCheck APIs.
//
// BackoffConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type BackoffConfig struct {
	Enabled bool
	// MaxLookupsPerWindow is a fixed-window budget for outbound range
	// queries; zero disables the budget.
	MaxLookupsPerWindow int
	Window              time.Duration
	// MaxConsecutiveFailures is how many Unavailable outcomes in a row are
	// tolerated before lookups short-circuit for FailureCooldown.
	MaxConsecutiveFailures int
	FailureCooldown        time.Duration
	RedisPrefix            string
}

// MessagesConfig defines a public type used by goPassCheck APIs.
//
// MessagesConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MessagesConfig struct {
	// Locale is a BCP 47 tag used to format occurrence counts in the
	// "found" message. Unparsable tags fall back to English.
	Locale string
}

// AuditConfig defines a public type used by goPassCheck APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig defines a public type used by goPassCheck APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

/*
====================================
DEFAULT CONFIG
====================================
*/

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Strength: StrengthConfig{
			MaxSuggestions: 5,
		},
		Lookup: LookupConfig{
			BaseURL:        "https://api.pwnedpasswords.com",
			RequestTimeout: 10 * time.Second,
			UserAgent:      "goPassCheck",
			AddPadding:     true,
		},
		Debounce: DebounceConfig{
			QuietPeriod: 700 * time.Millisecond,
			InputBuffer: 64,
		},
		Cache: CacheConfig{
			Enabled:     false,
			RedisPrefix: "pc",
			TTL:         30 * time.Minute,
		},
		Backoff: BackoffConfig{
			Enabled:                false,
			MaxLookupsPerWindow:    0,
			Window:                 time.Minute,
			MaxConsecutiveFailures: 3,
			FailureCooldown:        time.Minute,
			RedisPrefix:            "pc",
		},
		Messages: MessagesConfig{
			Locale: "en",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

func cloneConfig(cfg Config) Config {
	return cfg
}

/*
====================================
VALIDATION
====================================
*/

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
// Validate does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (c *Config) Validate() error {
	// Strength
	if c.Strength.MaxSuggestions <= 0 {
		return errors.New("Strength MaxSuggestions must be > 0")
	}

	// Lookup
	if c.Lookup.BaseURL == "" {
		return errors.New("Lookup BaseURL is required")
	}
	u, err := url.Parse(c.Lookup.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("Lookup BaseURL must be an absolute URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("Lookup BaseURL scheme must be http or https")
	}
	if c.Lookup.RequestTimeout <= 0 {
		return errors.New("Lookup RequestTimeout must be > 0")
	}

	// Debounce
	if c.Debounce.QuietPeriod <= 0 {
		return errors.New("Debounce QuietPeriod must be > 0")
	}
	if c.Debounce.InputBuffer <= 0 {
		return errors.New("Debounce InputBuffer must be > 0")
	}

	// Cache
	if c.Cache.Enabled {
		if c.Cache.RedisPrefix == "" {
			return errors.New("Cache RedisPrefix is required when cache is enabled")
		}
		if c.Cache.TTL <= 0 {
			return errors.New("Cache TTL must be > 0 when cache is enabled")
		}
	}

	// Backoff
	if c.Backoff.Enabled {
		if c.Backoff.RedisPrefix == "" {
			return errors.New("Backoff RedisPrefix is required when backoff is enabled")
		}
		if c.Backoff.MaxLookupsPerWindow < 0 {
			return errors.New("Backoff MaxLookupsPerWindow must be >= 0")
		}
		if c.Backoff.MaxLookupsPerWindow > 0 && c.Backoff.Window <= 0 {
			return errors.New("Backoff Window must be > 0 when a lookup budget is set")
		}
		if c.Backoff.MaxConsecutiveFailures < 0 {
			return errors.New("Backoff MaxConsecutiveFailures must be >= 0")
		}
		if c.Backoff.MaxConsecutiveFailures > 0 && c.Backoff.FailureCooldown <= 0 {
			return errors.New("Backoff FailureCooldown must be > 0 when failure backoff is set")
		}
	}

	// Messages
	if c.Messages.Locale != "" {
		if _, err := language.Parse(c.Messages.Locale); err != nil {
			return errors.New("Messages Locale must be a valid BCP 47 tag")
		}
	}

	// Audit
	if c.Audit.Enabled {
		if c.Audit.BufferSize <= 0 {
			return errors.New("Audit BufferSize must be > 0 when audit is enabled")
		}
	}

	return nil
}
