package internaldefs

import (
	goPassCheck "github.com/MrEthical07/goPassCheck"
)

// CounterDef defines a public type used by goPassCheck APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goPassCheck.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goPassCheck APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goPassCheck.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the password feedback engine.
var CounterDefs = []CounterDef{
	{ID: goPassCheck.MetricScorePublished, Name: "gopasscheck_score_published_total", Help: "Strength scores computed and published."},
	{ID: goPassCheck.MetricLookupIssued, Name: "gopasscheck_lookup_issued_total", Help: "Range queries issued to the breach service."},
	{ID: goPassCheck.MetricLookupFound, Name: "gopasscheck_lookup_found_total", Help: "Lookups that found the password in breach data."},
	{ID: goPassCheck.MetricLookupNotFound, Name: "gopasscheck_lookup_not_found_total", Help: "Lookups that found no breach match."},
	{ID: goPassCheck.MetricLookupUnavailable, Name: "gopasscheck_lookup_unavailable_total", Help: "Lookups that degraded to unavailable."},
	{ID: goPassCheck.MetricLookupError, Name: "gopasscheck_lookup_error_total", Help: "Lookups that failed before reaching the wire."},
	{ID: goPassCheck.MetricLookupThrottled, Name: "gopasscheck_lookup_throttled_total", Help: "Lookups short-circuited by throttle or backoff."},
	{ID: goPassCheck.MetricCacheHit, Name: "gopasscheck_cache_hit_total", Help: "Range responses served from the cache."},
	{ID: goPassCheck.MetricCacheMiss, Name: "gopasscheck_cache_miss_total", Help: "Range cache misses."},
	{ID: goPassCheck.MetricDebounceRestarted, Name: "gopasscheck_debounce_restarted_total", Help: "Debounce windows restarted by new input."},
	{ID: goPassCheck.MetricStaleDiscarded, Name: "gopasscheck_stale_discarded_total", Help: "Lookup results discarded as stale."},
	{ID: goPassCheck.MetricCheckSkippedEmpty, Name: "gopasscheck_check_skipped_empty_total", Help: "Checks skipped because the input was empty."},
}

// HistogramDefs is an exported constant or variable used by the password feedback engine.
var HistogramDefs = []HistogramDef{
	{ID: goPassCheck.MetricLookupLatency, Name: "gopasscheck_lookup_latency_seconds", Help: "Range lookup latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the password feedback engine.
var HistogramBounds = []string{
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"1",
	"2.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the password feedback engine.
var HistogramBoundSuffix = []string{
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"1",
	"2_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
//
// NormalizeBuckets may return an error when input validation, dependency calls, or security checks fail.
// NormalizeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
//
// CumulativeBuckets may return an error when input validation, dependency calls, or security checks fail.
// CumulativeBuckets does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
