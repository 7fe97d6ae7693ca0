package client

import (
	"time"

	"github.com/contextablemark/home-agui-agent/retry"
)

// EventType identifies the kind of event occurring during client operations.
type EventType string

const (
	// EventRunStart fires when a run request begins.
	EventRunStart EventType = "run_start"

	// EventRunComplete fires when a run finishes successfully.
	EventRunComplete EventType = "run_complete"

	// EventRunError fires when a run fails.
	EventRunError EventType = "run_error"

	// EventToolInvoked fires after each host tool invocation.
	EventToolInvoked EventType = "tool_invoked"

	// EventProbe fires after a connectivity probe.
	EventProbe EventType = "probe"

	// EventRetry forwards a connection retry event.
	EventRetry EventType = "retry"
)

// Event represents an observable occurrence during client operations.
type Event struct {
	// Type identifies the kind of event.
	Type EventType

	// ThreadID and RunID identify the turn, when known.
	ThreadID string
	RunID    string

	// Tool is the tool name for EventToolInvoked.
	Tool string

	// Duration is the elapsed time for completed operations.
	Duration time.Duration

	// Error contains the error for EventRunError.
	Error error

	// RetryEvent contains the underlying retry event for EventRetry.
	RetryEvent *retry.Event

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// emit sends an event with timestamp to the channel without blocking.
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
