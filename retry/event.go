package retry

import "time"

// EventType identifies a moment in a retried connection attempt.
type EventType string

const (
	// EventAttemptStart fires as a connection attempt begins.
	EventAttemptStart EventType = "attempt_start"

	// EventAttemptFailed fires when an attempt fails, retryable or not.
	EventAttemptFailed EventType = "attempt_failed"

	// EventRetrying fires before the backoff wait between attempts.
	EventRetrying EventType = "retrying"

	// EventSuccess fires when an attempt succeeds.
	EventSuccess EventType = "success"

	// EventExhausted fires when the attempt budget runs out.
	EventExhausted EventType = "exhausted"
)

// Event describes one lifecycle moment of a retried operation. The client
// forwards these on its observability channel so a caller can watch a run
// struggle to connect.
type Event struct {
	Type EventType

	// Attempt is 1-indexed; MaxAttempts is the policy's cap.
	Attempt     int
	MaxAttempts int

	// Error is the attempt's failure, if any, and Retryable whether it was
	// classified as transient.
	Error     error
	Retryable bool

	// Delay is the upcoming backoff wait, set on EventRetrying.
	Delay time.Duration

	Timestamp time.Time
}

// emit sends an event with timestamp to the channel without blocking. A slow
// or absent observer must never stall the connection loop.
func emit(ch chan<- Event, event Event) {
	if ch == nil {
		return
	}
	event.Timestamp = time.Now()
	select {
	case ch <- event:
	default:
	}
}
