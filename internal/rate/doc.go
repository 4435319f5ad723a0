// Package rate provides internal primitives used to build Redis-backed lookup
// budget keys, errors, and backoff behavior for outbound breach-service calls.
//
// # Window semantics
//
// Fixed-window counters: INCR + conditional EXPIRE on first hit. Key suffixes
// under the configured prefix:
//   - :budget — lookups issued in the current window
//   - :fail   — consecutive failed lookups, cleared on success
//
// # What this package must NOT do
//
//   - Decide what a throttled lookup means to the caller (the engine maps
//     ErrThrottled to an advisory outcome).
//   - Be imported outside the goPassCheck module.
package rate
