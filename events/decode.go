package events

import (
	"encoding/json"
	"fmt"
)

// FromJSON decodes a single protocol event from its JSON wire form, using
// the embedded "type" tag to select the concrete event struct.
//
// Unrecognized type tags decode into [*RawEvent] rather than failing, so a
// newer backend cannot break the stream. A record with no type tag at all
// is a decode error.
func FromJSON(data []byte) (Event, error) {
	var base struct {
		Type EventType `json:"type"`
	}
	if err := json.Unmarshal(data, &base); err != nil {
		return nil, fmt.Errorf("failed to parse event type: %w", err)
	}
	if base.Type == "" {
		return nil, fmt.Errorf("event has no type tag")
	}
	return FromJSONAs(base.Type, data)
}

// FromJSONAs decodes a protocol event whose type is already known, e.g.
// supplied by the transport's framing when the payload omits the tag.
func FromJSONAs(eventType EventType, data []byte) (Event, error) {
	// The base event is pre-allocated with the known type so records that
	// omit the tag still carry it after decoding.
	base := &BaseEvent{EventType: eventType}

	var event Event
	switch eventType {
	case EventTypeRunStarted:
		event = &RunStartedEvent{BaseEvent: base}
	case EventTypeRunFinished:
		event = &RunFinishedEvent{BaseEvent: base}
	case EventTypeRunError:
		event = &RunErrorEvent{BaseEvent: base}
	case EventTypeStepStarted:
		event = &StepStartedEvent{BaseEvent: base}
	case EventTypeStepFinished:
		event = &StepFinishedEvent{BaseEvent: base}
	case EventTypeTextMessageStart:
		event = &TextMessageStartEvent{BaseEvent: base}
	case EventTypeTextMessageContent:
		event = &TextMessageContentEvent{BaseEvent: base}
	case EventTypeTextMessageEnd:
		event = &TextMessageEndEvent{BaseEvent: base}
	case EventTypeToolCallStart:
		event = &ToolCallStartEvent{BaseEvent: base}
	case EventTypeToolCallArgs:
		event = &ToolCallArgsEvent{BaseEvent: base}
	case EventTypeToolCallEnd:
		event = &ToolCallEndEvent{BaseEvent: base}
	case EventTypeToolCallResult:
		event = &ToolCallResultEvent{BaseEvent: base}
	case EventTypeStateSnapshot:
		event = &StateSnapshotEvent{BaseEvent: base}
	case EventTypeStateDelta:
		event = &StateDeltaEvent{BaseEvent: base}
	default:
		return &RawEvent{
			BaseEvent: base,
			Payload:   append([]byte(nil), data...),
		}, nil
	}

	if err := json.Unmarshal(data, event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s event: %w", eventType, err)
	}
	return event, nil
}
