// Command aguitools serves a demo home-control tool catalog as an MCP
// server over stdio, so MCP clients can discover and call the same tools
// aguichat advertises to an agent.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/contextablemark/home-agui-agent/mcp"
	"github.com/contextablemark/home-agui-agent/tool"
)

func main() {
	catalog := tool.NewStaticCatalog()
	catalog.MustRegister(tool.HostTool{
		Name:        "HassTurnOn",
		Description: "Turns on a device or entity",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": map[string]any{"type": "string", "description": "Device or entity name"},
			},
		},
	}, stubHandler("turned on"))
	catalog.MustRegister(tool.HostTool{
		Name:        "HassTurnOff",
		Description: "Turns off a device or entity",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name": map[string]any{"type": "string", "description": "Device or entity name"},
			},
		},
	}, stubHandler("turned off"))

	if err := mcp.ServeStdio(catalog, mcp.WithName("aguitools")); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func stubHandler(action string) tool.Handler {
	return func(ctx context.Context, args map[string]any) (string, error) {
		target := "device"
		if name, ok := args["name"].(string); ok && name != "" {
			target = name
		}
		return fmt.Sprintf("%s %s", target, action), nil
	}
}
