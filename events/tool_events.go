package events

import (
	"encoding/json"
	"fmt"
)

// ToolCallStartEvent opens a streamed tool call request.
type ToolCallStartEvent struct {
	*BaseEvent
	ToolCallID      string `json:"toolCallId"`
	ToolCallName    string `json:"toolCallName"`
	ParentMessageID string `json:"parentMessageId,omitempty"`
}

// NewToolCallStartEvent creates a new tool call start event.
func NewToolCallStartEvent(toolCallID, toolCallName string) *ToolCallStartEvent {
	return &ToolCallStartEvent{
		BaseEvent:    newBaseEvent(EventTypeToolCallStart),
		ToolCallID:   toolCallID,
		ToolCallName: toolCallName,
	}
}

// Validate checks the tool call start event.
func (e *ToolCallStartEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.ToolCallID == "" {
		return fmt.Errorf("tool call ID is required")
	}
	if e.ToolCallName == "" {
		return fmt.Errorf("tool call name is required")
	}
	return nil
}

// ToolCallArgsEvent carries an incremental JSON fragment of a tool call's
// arguments. Fragments are concatenated in arrival order; the result is only
// parsed once the call ends.
type ToolCallArgsEvent struct {
	*BaseEvent
	ToolCallID string `json:"toolCallId"`
	Delta      string `json:"delta"`
}

// NewToolCallArgsEvent creates a new tool call args event.
func NewToolCallArgsEvent(toolCallID, delta string) *ToolCallArgsEvent {
	return &ToolCallArgsEvent{
		BaseEvent:  newBaseEvent(EventTypeToolCallArgs),
		ToolCallID: toolCallID,
		Delta:      delta,
	}
}

// Validate checks the tool call args event.
func (e *ToolCallArgsEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.ToolCallID == "" {
		return fmt.Errorf("tool call ID is required")
	}
	return nil
}

// ToolCallEndEvent closes a streamed tool call request.
type ToolCallEndEvent struct {
	*BaseEvent
	ToolCallID string `json:"toolCallId"`
}

// NewToolCallEndEvent creates a new tool call end event.
func NewToolCallEndEvent(toolCallID string) *ToolCallEndEvent {
	return &ToolCallEndEvent{
		BaseEvent:  newBaseEvent(EventTypeToolCallEnd),
		ToolCallID: toolCallID,
	}
}

// Validate checks the tool call end event.
func (e *ToolCallEndEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.ToolCallID == "" {
		return fmt.Errorf("tool call ID is required")
	}
	return nil
}

// ToolCallResultEvent reports the result of a tool the agent executed on its
// own side. The client does not act on it; it exists so backend-executed
// tools remain visible in logs.
type ToolCallResultEvent struct {
	*BaseEvent
	MessageID  string `json:"messageId,omitempty"`
	ToolCallID string `json:"toolCallId"`
	Content    string `json:"content"`
}

// Validate checks the tool call result event.
func (e *ToolCallResultEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.ToolCallID == "" {
		return fmt.Errorf("tool call ID is required")
	}
	return nil
}

// StateSnapshotEvent carries a full replacement of the run's shared state.
// The client accepts it for protocol completeness and ignores it.
type StateSnapshotEvent struct {
	*BaseEvent
	Snapshot json.RawMessage `json:"snapshot,omitempty"`
}

// StateDeltaEvent carries a JSON Patch (RFC 6902) against the shared state.
type StateDeltaEvent struct {
	*BaseEvent
	Delta json.RawMessage `json:"delta,omitempty"`
}
