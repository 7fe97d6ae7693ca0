package tool

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	aguiagent "github.com/contextablemark/home-agui-agent"
)

func TestInvokeSuccess(t *testing.T) {
	exec := ExecutorFunc(func(ctx context.Context, name string, args map[string]any) (string, error) {
		assert.Equal(t, "HassTurnOn", name)
		assert.Equal(t, map[string]any{"domain": []any{"light"}}, args)
		return "Turned on the light", nil
	})

	result := Invoke(context.Background(), exec, aguiagent.ToolRequest{
		ID:        "c1",
		Name:      "HassTurnOn",
		Arguments: map[string]any{"domain": []any{"light"}},
	})

	assert.Equal(t, "c1", result.ToolCallID)
	assert.Equal(t, "HassTurnOn", result.ToolName)
	assert.Equal(t, "Turned on the light", result.Content)
	assert.False(t, result.IsError)
}

func TestInvokeHandlerError(t *testing.T) {
	exec := ExecutorFunc(func(ctx context.Context, name string, args map[string]any) (string, error) {
		return "", errors.New("entity not found: light.garage")
	})

	result := Invoke(context.Background(), exec, aguiagent.ToolRequest{ID: "c1", Name: "HassTurnOn"})

	assert.True(t, result.IsError)
	assert.Equal(t, "entity not found: light.garage", result.Content)
	assert.Equal(t, "c1", result.ToolCallID)
}

func TestInvokeParseErrorSkipsExecution(t *testing.T) {
	called := false
	exec := ExecutorFunc(func(ctx context.Context, name string, args map[string]any) (string, error) {
		called = true
		return "", nil
	})

	result := Invoke(context.Background(), exec, aguiagent.ToolRequest{
		ID:       "c1",
		Name:     "HassTurnOn",
		ParseErr: aguiagent.NewDecodeError("failed to parse tool arguments", errors.New("unexpected end of JSON input")),
	})

	assert.False(t, called, "a request with unparsable arguments must not reach the executor")
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content, "invalid tool arguments")
}

func TestInvokeRecoversPanic(t *testing.T) {
	exec := ExecutorFunc(func(ctx context.Context, name string, args map[string]any) (string, error) {
		panic("handler bug")
	})

	result := Invoke(context.Background(), exec, aguiagent.ToolRequest{ID: "c1", Name: "broken"})

	require.True(t, result.IsError)
	assert.Contains(t, result.Content, "panicked")
	assert.Contains(t, result.Content, "handler bug")
}

func TestInvokeUnknownTool(t *testing.T) {
	c := NewStaticCatalog()

	result := Invoke(context.Background(), c, aguiagent.ToolRequest{ID: "c1", Name: "nope"})

	assert.True(t, result.IsError)
	assert.Contains(t, result.Content, "tool not found")
}
