// Package strength implements the heuristic password strength scorer.
//
// # Scoring rules
//
// Points are additive and evaluated independently:
//
//	length >= 12            +30
//	length in [8,12)        +15
//	length in (0,8)         +0, "make it longer" suggestion
//	any uppercase letter    +15, else suggestion
//	any lowercase letter    +15, else suggestion
//	any decimal digit       +15, else suggestion
//	any other character     +25, else suggestion
//
// The final score is capped at 100. Suggestions keep the rule order above.
// The empty password scores 0 with no suggestions: the "too short" hint is
// deliberately suppressed for empty input and only emitted for lengths 1–7.
//
// # Architecture boundaries
//
// This package owns scoring only. It is a pure, total function over all
// strings: no I/O, no state, no failure mode. Suggestion capping and
// presentation belong to the Engine.
//
// # What this package must NOT do
//
//   - Import any other goPassCheck package.
//   - Consult breach data or anything non-local to the password value.
package strength
