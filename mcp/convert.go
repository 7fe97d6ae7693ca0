// Package mcp connects MCP (Model Context Protocol) tool servers to agent
// runs. It provides bidirectional integration:
//
//   - Client: [RemoteCatalog] connects to an MCP server and surfaces its
//     tools as a catalog plus executor, so a host can advertise MCP tools
//     to the agent and route the agent's tool calls back to the server.
//   - Server: expose a [tool.StaticCatalog] as an MCP server, allowing MCP
//     clients to discover and call the host's tools directly.
//
// # Consuming an MCP Server
//
//	remote, err := mcp.NewRemoteCatalog(ctx, "./ha-mcp-server", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer remote.Close()
//
//	result, err := agent.Run(ctx, client.RunInput{
//	    Messages: msgs,
//	    Tools:    remote.Tools(),
//	}, remote)
package mcp

import (
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	aguiagent "github.com/contextablemark/home-agui-agent"
)

// ToServerTool converts a wire tool descriptor to an MCP tool definition.
// The descriptor's JSON parameter schema becomes the MCP tool's raw input
// schema, unreshaped.
func ToServerTool(t aguiagent.Tool) mcp.Tool {
	return mcp.NewToolWithRawSchema(t.Name, t.Description, t.Parameters)
}

// FromServerTool converts an MCP tool definition to a wire tool descriptor.
// It extracts the JSON schema from either RawInputSchema or InputSchema.
func FromServerTool(t mcp.Tool) aguiagent.Tool {
	var schema json.RawMessage

	if len(t.RawInputSchema) > 0 {
		schema = t.RawInputSchema
	} else if data, err := json.Marshal(t.InputSchema); err == nil {
		schema = data
	}

	return aguiagent.Tool{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  schema,
	}
}

// FromServerTools converts a slice of MCP tool definitions.
func FromServerTools(tools []mcp.Tool) []aguiagent.Tool {
	result := make([]aguiagent.Tool, len(tools))
	for i, t := range tools {
		result[i] = FromServerTool(t)
	}
	return result
}

// resultText flattens an MCP call result into a single text blob: text
// content verbatim, anything else JSON-encoded, structured content appended.
func resultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}

	var textParts []string
	for _, c := range result.Content {
		switch content := c.(type) {
		case mcp.TextContent:
			textParts = append(textParts, content.Text)
		case *mcp.TextContent:
			textParts = append(textParts, content.Text)
		default:
			if data, err := json.Marshal(content); err == nil {
				textParts = append(textParts, string(data))
			}
		}
	}

	if result.StructuredContent != nil {
		if data, err := json.Marshal(result.StructuredContent); err == nil {
			textParts = append(textParts, string(data))
		}
	}

	return strings.Join(textParts, "\n")
}
