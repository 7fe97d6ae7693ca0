package aguiagent

import "github.com/google/uuid"

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
	RoleTool      Role = "tool"
)

// Message represents a single message in a conversation thread.
// Messages are immutable once included in a run request.
type Message struct {
	// ID is a unique identifier for the message.
	ID   string `json:"id,omitempty"`
	Role Role   `json:"role"`
	// Content is the message text. For tool messages this is the tool
	// result payload.
	Content string `json:"content,omitempty"`
	// ToolCallID links a tool message to the tool call it answers.
	// Only populated when Role is RoleTool.
	ToolCallID string `json:"toolCallId,omitempty"`
}

// GenerateMessageID creates a unique message identifier.
func GenerateMessageID() string {
	return "msg-" + uuid.New().String()
}

// GenerateThreadID creates a unique conversation thread identifier.
func GenerateThreadID() string {
	return "thread-" + uuid.New().String()
}

// GenerateRunID creates a unique run identifier.
func GenerateRunID() string {
	return "run-" + uuid.New().String()
}
