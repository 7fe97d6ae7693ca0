package tool

import (
	"context"
	"fmt"

	aguiagent "github.com/contextablemark/home-agui-agent"
)

// Handler executes one tool with already-parsed arguments and returns the
// content to hand back to the agent.
type Handler func(ctx context.Context, args map[string]any) (string, error)

// Executor dispatches a tool invocation by name. The run loop calls it once
// per materialized tool request; implementations decide how the name maps to
// actual work (an in-memory catalog, an MCP server, a host API).
type Executor interface {
	Execute(ctx context.Context, name string, args map[string]any) (string, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, name string, args map[string]any) (string, error)

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, name string, args map[string]any) (string, error) {
	return f(ctx, name, args)
}

// Invoke runs one materialized tool request against the executor and always
// produces a result. Failures are captured, not propagated: an unparsable
// argument payload, a handler error, and a handler panic all become
// error-flagged results whose content describes the failure, so the agent
// can react instead of the whole run dying.
func Invoke(ctx context.Context, exec Executor, req aguiagent.ToolRequest) aguiagent.ToolResult {
	result := aguiagent.ToolResult{
		ToolCallID: req.ID,
		ToolName:   req.Name,
	}

	if req.ParseErr != nil {
		result.IsError = true
		result.Content = fmt.Sprintf("invalid tool arguments: %v", req.ParseErr)
		return result
	}

	content, err := safeExecute(ctx, exec, req)
	if err != nil {
		result.IsError = true
		result.Content = err.Error()
		return result
	}
	result.Content = content
	return result
}

// safeExecute shields the run loop from panicking handlers.
func safeExecute(ctx context.Context, exec Executor, req aguiagent.ToolRequest) (content string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool %s panicked: %v", req.Name, r)
		}
	}()
	return exec.Execute(ctx, req.Name, req.Arguments)
}
