package client

import (
	"context"
	"sync"

	aguiagent "github.com/contextablemark/home-agui-agent"
	"github.com/contextablemark/home-agui-agent/tool"
)

// Conversation keeps a thread's message history across turns, so each turn
// only needs the new user input. It is safe for concurrent use, though
// turns on one thread are naturally sequential.
type Conversation struct {
	client   *Client
	threadID string

	mu       sync.Mutex
	messages []aguiagent.Message
}

// NewConversation starts a conversation on a fresh thread. An optional
// system prompt seeds the history.
func NewConversation(c *Client, systemPrompt string) *Conversation {
	conv := &Conversation{
		client:   c,
		threadID: aguiagent.GenerateThreadID(),
	}
	if systemPrompt != "" {
		conv.messages = append(conv.messages, aguiagent.Message{
			ID:      aguiagent.GenerateMessageID(),
			Role:    aguiagent.RoleSystem,
			Content: systemPrompt,
		})
	}
	return conv
}

// ThreadID returns the conversation's thread identifier.
func (conv *Conversation) ThreadID() string {
	return conv.threadID
}

// Messages returns a copy of the conversation history.
func (conv *Conversation) Messages() []aguiagent.Message {
	conv.mu.Lock()
	defer conv.mu.Unlock()
	return append([]aguiagent.Message(nil), conv.messages...)
}

// Reset clears the history, keeping the thread identifier.
func (conv *Conversation) Reset() {
	conv.mu.Lock()
	defer conv.mu.Unlock()
	conv.messages = nil
}

// Send runs one turn with the given user input. On success the history is
// advanced: user input, tool result messages, and the agent's response are
// all recorded for the next turn. On error the history is left unchanged.
func (conv *Conversation) Send(ctx context.Context, text string, opts TurnOptions, exec tool.Executor) (*RunResult, error) {
	conv.mu.Lock()
	history := append([]aguiagent.Message(nil), conv.messages...)
	conv.mu.Unlock()

	userMsg := aguiagent.Message{
		ID:      aguiagent.GenerateMessageID(),
		Role:    aguiagent.RoleUser,
		Content: text,
	}

	result, err := conv.client.Run(ctx, RunInput{
		ThreadID:       conv.threadID,
		Messages:       append(history, userMsg),
		Tools:          opts.Tools,
		Context:        opts.Context,
		ForwardedProps: opts.ForwardedProps,
	}, exec)
	if err != nil {
		return nil, err
	}

	next := result.Messages
	if result.ResponseText != "" {
		next = append(next, aguiagent.Message{
			ID:      aguiagent.GenerateMessageID(),
			Role:    aguiagent.RoleAssistant,
			Content: result.ResponseText,
		})
	}

	conv.mu.Lock()
	conv.messages = next
	conv.mu.Unlock()

	return result, nil
}

// TurnOptions carries the per-turn inputs besides the user text.
type TurnOptions struct {
	Tools          []aguiagent.Tool
	Context        map[string]string
	ForwardedProps map[string]any
}
