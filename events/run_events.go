package events

import "fmt"

// RunStartedEvent indicates that an agent run has started.
type RunStartedEvent struct {
	*BaseEvent
	ThreadID string `json:"threadId"`
	RunID    string `json:"runId"`
}

// NewRunStartedEvent creates a new run started event.
func NewRunStartedEvent(threadID, runID string) *RunStartedEvent {
	return &RunStartedEvent{
		BaseEvent: newBaseEvent(EventTypeRunStarted),
		ThreadID:  threadID,
		RunID:     runID,
	}
}

// Validate checks the run started event.
func (e *RunStartedEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.ThreadID == "" {
		return fmt.Errorf("thread ID is required")
	}
	if e.RunID == "" {
		return fmt.Errorf("run ID is required")
	}
	return nil
}

// RunFinishedEvent indicates that an agent run has finished successfully.
type RunFinishedEvent struct {
	*BaseEvent
	ThreadID string `json:"threadId"`
	RunID    string `json:"runId"`
}

// NewRunFinishedEvent creates a new run finished event.
func NewRunFinishedEvent(threadID, runID string) *RunFinishedEvent {
	return &RunFinishedEvent{
		BaseEvent: newBaseEvent(EventTypeRunFinished),
		ThreadID:  threadID,
		RunID:     runID,
	}
}

// RunErrorEvent indicates that an agent run failed. It is terminal: no
// further events are processed after it.
type RunErrorEvent struct {
	*BaseEvent
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// NewRunErrorEvent creates a new run error event.
func NewRunErrorEvent(message string) *RunErrorEvent {
	return &RunErrorEvent{
		BaseEvent: newBaseEvent(EventTypeRunError),
		Message:   message,
	}
}

// Validate checks the run error event.
func (e *RunErrorEvent) Validate() error {
	if err := e.BaseEvent.Validate(); err != nil {
		return err
	}
	if e.Message == "" {
		return fmt.Errorf("error message is required")
	}
	return nil
}

// StepStartedEvent marks the start of a named step within a run.
// Informational; the client logs it and moves on.
type StepStartedEvent struct {
	*BaseEvent
	StepName string `json:"stepName"`
}

// StepFinishedEvent marks the end of a named step within a run.
type StepFinishedEvent struct {
	*BaseEvent
	StepName string `json:"stepName"`
}
