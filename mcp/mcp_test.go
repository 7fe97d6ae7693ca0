package mcp

import (
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"

	aguiagent "github.com/contextablemark/home-agui-agent"
)

func TestToServerTool(t *testing.T) {
	t.Run("converts descriptor to MCP tool", func(t *testing.T) {
		schema := json.RawMessage(`{"type":"object","properties":{"domain":{"type":"array"}}}`)
		desc := aguiagent.Tool{
			Name:        "HassTurnOn",
			Description: "Turns on a device",
			Parameters:  schema,
		}

		mcpTool := ToServerTool(desc)

		assert.Equal(t, "HassTurnOn", mcpTool.Name)
		assert.Equal(t, "Turns on a device", mcpTool.Description)
		assert.Equal(t, schema, mcpTool.RawInputSchema)
	})

	t.Run("handles nil parameters", func(t *testing.T) {
		desc := aguiagent.Tool{
			Name:        "simple",
			Description: "Simple tool",
		}

		mcpTool := ToServerTool(desc)

		assert.Equal(t, "simple", mcpTool.Name)
		assert.Equal(t, "Simple tool", mcpTool.Description)
	})
}

func TestFromServerTool(t *testing.T) {
	t.Run("converts MCP tool with raw schema", func(t *testing.T) {
		schema := json.RawMessage(`{"type":"object"}`)
		mcpTool := mcp.NewToolWithRawSchema("HassTurnOff", "Turns off a device", schema)

		desc := FromServerTool(mcpTool)

		assert.Equal(t, "HassTurnOff", desc.Name)
		assert.Equal(t, "Turns off a device", desc.Description)
		assert.JSONEq(t, `{"type":"object"}`, string(desc.Parameters))
	})

	t.Run("converts MCP tool with structured schema", func(t *testing.T) {
		mcpTool := mcp.NewTool("HassSetTemperature",
			mcp.WithDescription("Sets a thermostat target"),
			mcp.WithNumber("temperature", mcp.Required(), mcp.Description("Target in degrees")),
		)

		desc := FromServerTool(mcpTool)

		assert.Equal(t, "HassSetTemperature", desc.Name)
		assert.Equal(t, "Sets a thermostat target", desc.Description)
		assert.NotNil(t, desc.Parameters)
	})
}

func TestFromServerTools(t *testing.T) {
	mcpTools := []mcp.Tool{
		mcp.NewTool("a", mcp.WithDescription("Tool A")),
		mcp.NewTool("b", mcp.WithDescription("Tool B")),
	}

	descs := FromServerTools(mcpTools)

	assert.Len(t, descs, 2)
	assert.Equal(t, "a", descs[0].Name)
	assert.Equal(t, "b", descs[1].Name)
}

func TestResultText(t *testing.T) {
	t.Run("joins text content", func(t *testing.T) {
		result := &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{Type: "text", Text: "line one"},
				mcp.TextContent{Type: "text", Text: "line two"},
			},
		}

		assert.Equal(t, "line one\nline two", resultText(result))
	})

	t.Run("appends structured content as JSON", func(t *testing.T) {
		result := &mcp.CallToolResult{
			Content: []mcp.Content{
				mcp.TextContent{Type: "text", Text: "ok"},
			},
			StructuredContent: map[string]any{"state": "on"},
		}

		assert.Equal(t, "ok\n{\"state\":\"on\"}", resultText(result))
	})

	t.Run("nil result", func(t *testing.T) {
		assert.Equal(t, "", resultText(nil))
	})
}
