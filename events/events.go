package events

import (
	"fmt"
	"time"
)

// EventType identifies the type of an AG-UI event, matching the protocol's
// wire-level type tags.
type EventType string

const (
	EventTypeRunStarted         EventType = "RUN_STARTED"
	EventTypeRunFinished        EventType = "RUN_FINISHED"
	EventTypeRunError           EventType = "RUN_ERROR"
	EventTypeStepStarted        EventType = "STEP_STARTED"
	EventTypeStepFinished       EventType = "STEP_FINISHED"
	EventTypeTextMessageStart   EventType = "TEXT_MESSAGE_START"
	EventTypeTextMessageContent EventType = "TEXT_MESSAGE_CONTENT"
	EventTypeTextMessageEnd     EventType = "TEXT_MESSAGE_END"
	EventTypeToolCallStart      EventType = "TOOL_CALL_START"
	EventTypeToolCallArgs       EventType = "TOOL_CALL_ARGS"
	EventTypeToolCallEnd        EventType = "TOOL_CALL_END"
	EventTypeToolCallResult     EventType = "TOOL_CALL_RESULT"
	EventTypeStateSnapshot      EventType = "STATE_SNAPSHOT"
	EventTypeStateDelta         EventType = "STATE_DELTA"
)

// Event is the common interface for all AG-UI protocol events.
type Event interface {
	// Type returns the event type.
	Type() EventType

	// Timestamp returns the event timestamp in Unix milliseconds, or nil
	// if the backend did not set one.
	Timestamp() *int64

	// Validate checks the event's structural requirements (required
	// identifier fields). It does not check sequencing; that is the run
	// state machine's concern.
	Validate() error
}

// BaseEvent provides the common fields shared by all events.
type BaseEvent struct {
	EventType   EventType `json:"type"`
	TimestampMs *int64    `json:"timestamp,omitempty"`
}

// Type returns the event type.
func (b *BaseEvent) Type() EventType {
	return b.EventType
}

// Timestamp returns the event timestamp in Unix milliseconds.
func (b *BaseEvent) Timestamp() *int64 {
	return b.TimestampMs
}

// Validate checks that the type tag is present.
func (b *BaseEvent) Validate() error {
	if b.EventType == "" {
		return fmt.Errorf("event type is required")
	}
	return nil
}

// newBaseEvent creates a base event of the given type stamped with the
// current time. Used by the constructors, which exist mainly for tests and
// local tooling; decoded events keep whatever the backend sent.
func newBaseEvent(eventType EventType) *BaseEvent {
	now := time.Now().UnixMilli()
	return &BaseEvent{EventType: eventType, TimestampMs: &now}
}

// RawEvent preserves an event whose type this client does not recognize.
// Downstream consumers log and ignore it, keeping the client forward
// compatible with newer protocol revisions.
type RawEvent struct {
	*BaseEvent
	// Payload is the undecoded JSON record.
	Payload []byte `json:"-"`
}

// Validate accepts any raw event; by definition its shape is unknown.
func (e *RawEvent) Validate() error {
	return nil
}
