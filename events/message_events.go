package events

import "fmt"

// TextMessageStartEvent opens a streamed assistant text message.
type TextMessageStartEvent struct {
	*BaseEvent
	MessageID string `json:"messageId"`
	Role      string `json:"role,omitempty"`
}

// NewTextMessageStartEvent creates a new text message start event.
func NewTextMessageStartEvent(messageID string) *TextMessageStartEvent {
	return &TextMessageStartEvent{
		BaseEvent: newBaseEvent(EventTypeTextMessageStart),
		MessageID: messageID,
		Role:      "assistant",
	}
}

// Validate checks the text message start event.
func (e *TextMessageStartEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.MessageID == "" {
		return fmt.Errorf("message ID is required")
	}
	return nil
}

// TextMessageContentEvent carries an incremental text fragment for an open
// message.
type TextMessageContentEvent struct {
	*BaseEvent
	MessageID string `json:"messageId"`
	Delta     string `json:"delta"`
}

// NewTextMessageContentEvent creates a new text message content event.
func NewTextMessageContentEvent(messageID, delta string) *TextMessageContentEvent {
	return &TextMessageContentEvent{
		BaseEvent: newBaseEvent(EventTypeTextMessageContent),
		MessageID: messageID,
		Delta:     delta,
	}
}

// Validate checks the text message content event. An empty delta is legal;
// some backends emit keep-alive fragments.
func (e *TextMessageContentEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.MessageID == "" {
		return fmt.Errorf("message ID is required")
	}
	return nil
}

// TextMessageEndEvent closes a streamed assistant text message.
type TextMessageEndEvent struct {
	*BaseEvent
	MessageID string `json:"messageId"`
}

// NewTextMessageEndEvent creates a new text message end event.
func NewTextMessageEndEvent(messageID string) *TextMessageEndEvent {
	return &TextMessageEndEvent{
		BaseEvent: newBaseEvent(EventTypeTextMessageEnd),
		MessageID: messageID,
	}
}

// Validate checks the text message end event.
func (e *TextMessageEndEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.MessageID == "" {
		return fmt.Errorf("message ID is required")
	}
	return nil
}
