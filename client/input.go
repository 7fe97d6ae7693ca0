package client

import (
	aguiagent "github.com/contextablemark/home-agui-agent"
)

// RunInput describes one conversation turn to run against the agent.
type RunInput struct {
	// ThreadID identifies the conversation. Generated when empty.
	ThreadID string

	// RunID identifies this turn. Generated when empty.
	RunID string

	// Messages is the conversation so far, oldest first.
	Messages []aguiagent.Message

	// Tools are the host tools advertised to the agent for this turn.
	Tools []aguiagent.Tool

	// Context carries extra key/value context for the agent, such as the
	// host's location or exposed areas.
	Context map[string]string

	// ForwardedProps carries host configuration passed through to the agent.
	ForwardedProps map[string]any
}

// RunResult is the outcome of one successfully finished turn.
type RunResult struct {
	// ThreadID and RunID identify the turn, matching what the agent echoed
	// in its lifecycle events.
	ThreadID string
	RunID    string

	// ResponseText is the agent's streamed text, concatenated.
	ResponseText string

	// Messages is the input conversation plus this turn's tool result
	// messages, ready to send on the next turn.
	Messages []aguiagent.Message

	// ToolResults are this turn's tool executions, in dispatch order.
	ToolResults []aguiagent.ToolResult

	// Anomalies counts protocol violations absorbed while processing the
	// stream. Zero for a well-behaved agent.
	Anomalies int
}

// ContextItem is one contextual key/value pair on the wire.
type ContextItem struct {
	Description string `json:"description"`
	Value       string `json:"value"`
}

// runAgentInput is the wire-format run request body.
type runAgentInput struct {
	ThreadID       string              `json:"threadId"`
	RunID          string              `json:"runId"`
	Messages       []aguiagent.Message `json:"messages"`
	Tools          []aguiagent.Tool    `json:"tools"`
	Context        []ContextItem       `json:"context"`
	State          map[string]any      `json:"state"`
	ForwardedProps map[string]any      `json:"forwardedProps"`
}

// buildRunAgentInput assembles the wire request. Slices and maps are always
// present in the JSON, empty rather than null, which some agent frameworks
// insist on.
func buildRunAgentInput(in RunInput) runAgentInput {
	messages := in.Messages
	if messages == nil {
		messages = []aguiagent.Message{}
	}
	tools := in.Tools
	if tools == nil {
		tools = []aguiagent.Tool{}
	}

	contextItems := make([]ContextItem, 0, len(in.Context))
	for k, v := range in.Context {
		contextItems = append(contextItems, ContextItem{Description: k, Value: v})
	}

	props := in.ForwardedProps
	if props == nil {
		props = map[string]any{}
	}

	return runAgentInput{
		ThreadID:       in.ThreadID,
		RunID:          in.RunID,
		Messages:       messages,
		Tools:          tools,
		Context:        contextItems,
		State:          map[string]any{},
		ForwardedProps: props,
	}
}
