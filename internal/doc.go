// Package internal contains helper utilities that are intentionally private to goPassCheck,
// including digest derivation and range-key splitting for the k-anonymity protocol.
//
// # Sub-packages
//
//   - cache — Redis-backed range-response cache
//   - rate — Redis-backed lookup budget and failure backoff primitives
//
// # What this package must NOT do
//
//   - Export types that appear in the public goPassCheck API.
//   - Be imported by any package outside the goPassCheck module.
package internal
