// Command aguichat is a small terminal chat against a remote AG-UI agent
// endpoint. It advertises a demo home-control tool catalog (or the tools of
// an MCP server) and executes the agent's tool calls locally.
//
// Configuration comes from the environment (a .env file is loaded if
// present):
//
//	AGUI_ENDPOINT      agent endpoint URL (required)
//	AGUI_BEARER_TOKEN  optional bearer token
//	AGUI_TIMEOUT       per-turn timeout in seconds (default 120)
//	AGUI_NO_RETRY      set to 1 to fail immediately on connection errors
//	AGUI_MCP_SERVER    optional MCP server command to source tools from
//
// Run with -probe to check endpoint connectivity and exit.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/contextablemark/home-agui-agent/client"
	"github.com/contextablemark/home-agui-agent/mcp"
	"github.com/contextablemark/home-agui-agent/retry"
	"github.com/contextablemark/home-agui-agent/tool"
)

var reader = bufio.NewReader(os.Stdin)

func main() {
	godotenv.Load()

	probe := flag.Bool("probe", false, "check endpoint connectivity and exit")
	flag.Parse()

	endpoint := os.Getenv("AGUI_ENDPOINT")
	if endpoint == "" {
		fmt.Fprintln(os.Stderr, "AGUI_ENDPOINT is not set")
		os.Exit(1)
	}

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	opts := []client.ClientOption{client.WithLogger(log)}
	if token := os.Getenv("AGUI_BEARER_TOKEN"); token != "" {
		opts = append(opts, client.WithBearerToken(token))
	}
	if raw := os.Getenv("AGUI_TIMEOUT"); raw != "" {
		secs, err := strconv.Atoi(raw)
		if err != nil || secs <= 0 {
			fmt.Fprintf(os.Stderr, "invalid AGUI_TIMEOUT %q\n", raw)
			os.Exit(1)
		}
		opts = append(opts, client.WithTimeout(time.Duration(secs)*time.Second))
	}
	if os.Getenv("AGUI_NO_RETRY") == "1" {
		opts = append(opts, client.WithRetryConfig(retry.Disabled()))
	}

	c, err := client.New(endpoint, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if *probe {
		if err := c.Probe(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Probe failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Endpoint %s is reachable\n", c.Endpoint())
		return
	}

	catalog, closeCatalog, err := buildCatalog(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeCatalog()

	fmt.Printf("Connected to %s\n", c.Endpoint())
	fmt.Println("Type a message, or 'quit' to exit.")
	fmt.Println()

	conv := client.NewConversation(c, "You are a helpful home assistant. Use the provided tools to control devices.")
	turnOpts := client.TurnOptions{Tools: catalog.Tools()}

	for {
		fmt.Print("You: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}

		result, err := conv.Send(ctx, line, turnOpts, catalog)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}

		for _, res := range result.ToolResults {
			status := "ok"
			if res.IsError {
				status = "error"
			}
			fmt.Printf("  [tool %s: %s] %s\n", res.ToolName, status, res.Content)
		}
		fmt.Printf("Assistant: %s\n\n", result.ResponseText)
	}
}

// toolCatalog is what the chat loop needs: descriptors plus execution.
type toolCatalog interface {
	tool.Catalog
	tool.Executor
}

// buildCatalog returns the MCP-backed catalog when AGUI_MCP_SERVER is set,
// otherwise a demo home-control catalog with stubbed handlers.
func buildCatalog(ctx context.Context) (toolCatalog, func(), error) {
	if command := os.Getenv("AGUI_MCP_SERVER"); command != "" {
		parts := strings.Fields(command)
		remote, err := mcp.NewRemoteCatalog(ctx, parts[0], nil, parts[1:]...)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to MCP server: %w", err)
		}
		fmt.Printf("Using %d tools from MCP server %s\n", remote.Len(), parts[0])
		return remote, func() { remote.Close() }, nil
	}

	catalog := tool.NewStaticCatalog()
	catalog.MustRegister(tool.HostTool{
		Name:        "HassTurnOn",
		Description: "Turns on a device or entity",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":   map[string]any{"type": "string", "description": "Device or entity name"},
				"domain": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
		},
	}, demoHandler("turned on"))
	catalog.MustRegister(tool.HostTool{
		Name:        "HassTurnOff",
		Description: "Turns off a device or entity",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":   map[string]any{"type": "string", "description": "Device or entity name"},
				"domain": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			},
		},
	}, demoHandler("turned off"))
	catalog.MustRegister(tool.HostTool{
		Name:        "HassListEntities",
		Description: "Lists the entities available in the home",
	}, func(ctx context.Context, args map[string]any) (string, error) {
		return "light.living_room, light.kitchen, switch.fan, climate.thermostat", nil
	})

	return catalog, func() {}, nil
}

// demoHandler pretends to act on a device and echoes what it did.
func demoHandler(action string) tool.Handler {
	return func(ctx context.Context, args map[string]any) (string, error) {
		target := "device"
		if name, ok := args["name"].(string); ok && name != "" {
			target = name
		}
		return fmt.Sprintf("%s %s", target, action), nil
	}
}
