package rate

import "errors"

var (
	// ErrThrottled is an exported constant or variable used by the password feedback engine.
	ErrThrottled = errors.New("lookup throttled")
	// ErrRedisUnavailable is an exported constant or variable used by the password feedback engine.
	ErrRedisUnavailable = errors.New("redis unavailable")
)
