package goPassCheck

// BreachStatus represents the lifecycle state of a breach check as published
// to the feedback sink.
type BreachStatus uint8

const (
	// StatusUnknown is an exported constant or variable used by the password feedback engine.
	// Unknown means "not applicable" (empty input); it is distinct from
	// Unavailable, which means "checked but the service could not answer".
	StatusUnknown BreachStatus = iota
	// StatusChecking is an exported constant or variable used by the password feedback engine.
	StatusChecking
	// StatusNotFound is an exported constant or variable used by the password feedback engine.
	StatusNotFound
	// StatusFound is an exported constant or variable used by the password feedback engine.
	StatusFound
	// StatusUnavailable is an exported constant or variable used by the password feedback engine.
	StatusUnavailable
	// StatusError is an exported constant or variable used by the password feedback engine.
	StatusError
)

// String describes the string operation and its observable behavior.
//
// String does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s BreachStatus) String() string {
	switch s {
	case StatusUnknown:
		return "unknown"
	case StatusChecking:
		return "checking"
	case StatusNotFound:
		return "not-found"
	case StatusFound:
		return "found"
	case StatusUnavailable:
		return "unavailable"
	case StatusError:
		return "error"
	default:
		return "invalid"
	}
}

// ScoreResult is the outcome of the pure strength scorer: a bounded score in
// [0,100] and an ordered list of improvement suggestions, capped at
// [StrengthConfig.MaxSuggestions].
type ScoreResult struct {
	Score       int
	Suggestions []string
}

// BreachResult is the outcome of one completed lookup attempt. Count is
// meaningful only when Status is [StatusFound]; a zero occurrence count is
// represented as [StatusNotFound], never as Found with Count 0.
type BreachResult struct {
	Status BreachStatus
	Count  int
}

// BreachUpdate is delivered to the feedback sink once per completed or
// short-circuited check. CheckID correlates updates belonging to the same
// session; Message is the human-readable advisory text per status.
type BreachUpdate struct {
	CheckID string
	Status  BreachStatus
	Count   int
	Message string
}

// CheckResult is returned by [Engine.CheckPassword]. It bundles the strength
// score with the breach lookup outcome of a single one-shot check.
type CheckResult struct {
	CheckID string
	Score   ScoreResult
	Breach  BreachResult
	Message string
}

// FeedbackSink receives presentation updates from a [Session]. PublishScore
// is called synchronously on every input; PublishBreach is called from the
// session's event loop, never concurrently with itself for the same session.
//
// Implementations must not retain the suggestion slice beyond the call.
type FeedbackSink interface {
	PublishScore(result ScoreResult)
	PublishBreach(update BreachUpdate)
}
