// Package cache provides the Redis-backed range-response cache.
//
// # Key layout
//
// One string key per range prefix:
//
//	<prefix>:range:<5-hex-prefix>  →  raw response body, TTL-bound
//
// Identical prefixes within the TTL never hit the network twice. The cache
// stores the response body, not the match outcome, so one cached entry serves
// every digest sharing the prefix.
//
// # What this package must NOT do
//
//   - Store digests, suffixes, or anything password-derived beyond the
//     5-character range prefix already sent on the wire.
//   - Be imported outside the goPassCheck module.
package cache
