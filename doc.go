// Package goPassCheck provides real-time feedback on candidate passwords: a
// deterministic heuristic strength score with improvement suggestions, and a
// privacy-preserving k-anonymity breach lookup against a remote
// breach-frequency service.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build]. Keystroke-driven usage goes through [Session], which owns a
// single cooperative event loop per input field: scores publish synchronously
// on every input, breach lookups are debounced behind a quiet period, and
// stale lookup completions are discarded by sequence check so the sink never
// observes an older result overwriting a newer one.
//
// # Architecture boundaries
//
// goPassCheck is the public surface. It exposes [Engine], [Builder], [Config],
// [Session], and value types (ScoreResult, BreachResult, CheckResult, etc.).
// The pure scorer lives in the strength sub-package and the wire client in the
// hibp sub-package; all remaining coordination — range caching, lookup
// throttling, digest splitting — lives under internal/ and is never exported.
//
// # What this package must NOT do
//
//   - Transmit the full password or its full digest to any remote service.
//     Only the first 5 hex characters of the SHA-1 digest ever leave the
//     process, and only toward the configured range endpoint.
//   - Persist or log password material. Audit events carry at most the
//     5-character range prefix.
//   - Let a network or parsing failure propagate to the input-handling path.
//     Failures degrade to an advisory "unavailable"/"error" status while
//     strength feedback keeps working.
package goPassCheck
