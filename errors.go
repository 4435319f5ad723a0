package goPassCheck

import "errors"

var (
	// ErrEngineNotReady is an exported constant or variable used by the password feedback engine.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrNilSink is an exported constant or variable used by the password feedback engine.
	ErrNilSink = errors.New("feedback sink required")
	// ErrSessionClosed is an exported constant or variable used by the password feedback engine.
	ErrSessionClosed = errors.New("session closed")
	// ErrLookupUnavailable is an exported constant or variable used by the password feedback engine.
	ErrLookupUnavailable = errors.New("breach lookup unavailable")
	// ErrLookupThrottled is an exported constant or variable used by the password feedback engine.
	ErrLookupThrottled = errors.New("breach lookup throttled")
	// ErrInvalidDigest is an exported constant or variable used by the password feedback engine.
	ErrInvalidDigest = errors.New("invalid password digest")
)
