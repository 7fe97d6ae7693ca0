package aguiagent

import "encoding/json"

// Tool describes a frontend tool advertised to the remote agent.
// The agent selects arguments based on Parameters, so the schema must
// reflect the host tool exactly.
type Tool struct {
	// Name is the unique identifier for the tool within a run.
	Name string `json:"name"`
	// Description explains what the tool does (helps the agent decide when to use it).
	Description string `json:"description"`
	// Parameters is a JSON Schema object defining the tool's arguments.
	Parameters json.RawMessage `json:"parameters,omitempty"`
}

// ToolRequest is a fully materialized tool call: its identifier, name, and
// arguments have been accumulated from the event stream and parsed.
type ToolRequest struct {
	// ID is the tool call identifier assigned by the agent.
	ID string
	// Name is the name of the tool to invoke.
	Name string
	// RawArguments is the concatenation of the streamed argument fragments.
	RawArguments string
	// Arguments is the parsed form of RawArguments. Nil when parsing failed
	// or no arguments were streamed.
	Arguments map[string]any
	// ParseErr records a failure to parse RawArguments as JSON. A request
	// with a parse error must not be invoked; the bridge synthesizes a
	// failed result for it instead.
	ParseErr error
}

// ToolResult represents the outcome of executing a tool call on the host.
type ToolResult struct {
	// ToolCallID matches the ID from the corresponding tool call.
	ToolCallID string `json:"toolCallId"`
	// ToolName is the name of the tool that was invoked.
	ToolName string `json:"toolName,omitempty"`
	// Content is the result payload, or the error detail when IsError is set.
	Content string `json:"content"`
	// IsError indicates the invocation failed.
	IsError bool `json:"isError,omitempty"`
}

// NewToolResultMessage creates a tool message carrying a tool result,
// suitable for appending to the conversation for the next turn.
func NewToolResultMessage(result ToolResult) Message {
	return Message{
		ID:         GenerateMessageID(),
		Role:       RoleTool,
		Content:    result.Content,
		ToolCallID: result.ToolCallID,
	}
}
