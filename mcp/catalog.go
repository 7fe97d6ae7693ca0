package mcp

import (
	"context"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	aguiagent "github.com/contextablemark/home-agui-agent"
)

// RemoteCatalog surfaces the tools of an MCP server as a [tool.Catalog] and
// routes execution back to the server, satisfying the run loop's executor
// interface.
//
// RemoteCatalog is safe for concurrent use. The tool list is cached locally
// and can be refreshed with [RemoteCatalog.Refresh].
type RemoteCatalog struct {
	client *client.Client
	mu     sync.RWMutex
	tools  map[string]aguiagent.Tool
	order  []string
}

// NewRemoteCatalog connects to an MCP server over stdio. The command is the
// path to the server executable, and args are passed to it.
//
// Example:
//
//	remote, err := mcp.NewRemoteCatalog(ctx, "./ha-mcp-server", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer remote.Close()
func NewRemoteCatalog(ctx context.Context, command string, env []string, args ...string) (*RemoteCatalog, error) {
	c, err := client.NewStdioMCPClient(command, env, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP client: %w", err)
	}

	return newRemoteCatalog(ctx, c)
}

// NewRemoteCatalogSSE connects to an MCP server over SSE.
//
// Example:
//
//	remote, err := mcp.NewRemoteCatalogSSE(ctx, "http://localhost:8080/mcp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer remote.Close()
func NewRemoteCatalogSSE(ctx context.Context, baseURL string) (*RemoteCatalog, error) {
	c, err := client.NewSSEMCPClient(baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSE MCP client: %w", err)
	}

	return newRemoteCatalog(ctx, c)
}

// NewRemoteCatalogFromClient wraps an existing MCP client. The client is
// started, initialized, and its tool list fetched.
func NewRemoteCatalogFromClient(ctx context.Context, c *client.Client) (*RemoteCatalog, error) {
	return newRemoteCatalog(ctx, c)
}

func newRemoteCatalog(ctx context.Context, c *client.Client) (*RemoteCatalog, error) {
	if err := c.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start MCP client: %w", err)
	}

	_, err := c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			Capabilities:    mcp.ClientCapabilities{},
			ClientInfo: mcp.Implementation{
				Name:    "home-agui-agent",
				Version: "1.0.0",
			},
		},
	})
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to initialize MCP session: %w", err)
	}

	r := &RemoteCatalog{
		client: c,
		tools:  make(map[string]aguiagent.Tool),
	}

	if err := r.Refresh(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to list tools: %w", err)
	}

	return r, nil
}

// Close closes the connection to the MCP server.
func (r *RemoteCatalog) Close() error {
	return r.client.Close()
}

// Refresh fetches the current list of tools from the MCP server. Call it
// when the server's tool set may have changed.
func (r *RemoteCatalog) Refresh(ctx context.Context) error {
	result, err := r.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tools = make(map[string]aguiagent.Tool, len(result.Tools))
	r.order = r.order[:0]
	for _, t := range result.Tools {
		if _, seen := r.tools[t.Name]; !seen {
			r.order = append(r.order, t.Name)
		}
		r.tools[t.Name] = FromServerTool(t)
	}

	return nil
}

// Tools returns all tools available from the MCP server, in the order the
// server listed them.
func (r *RemoteCatalog) Tools() []aguiagent.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]aguiagent.Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.tools[name])
	}
	return tools
}

// GetTool retrieves a tool descriptor by name.
func (r *RemoteCatalog) GetTool(name string) (aguiagent.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tools[name]
	return t, ok
}

// Names returns the names of all available tools.
func (r *RemoteCatalog) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Len returns the number of available tools.
func (r *RemoteCatalog) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tools)
}

// Has returns true if the server exposes a tool with the given name.
func (r *RemoteCatalog) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tools[name]
	return ok
}

// Execute proxies a tool call to the MCP server. A server-side tool failure
// comes back as an error so the invocation bridge flags the result for the
// agent.
func (r *RemoteCatalog) Execute(ctx context.Context, name string, args map[string]any) (string, error) {
	result, err := r.client.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	})
	if err != nil {
		return "", aguiagent.NewToolError(fmt.Sprintf("MCP call to %s failed", name), err)
	}

	text := resultText(result)
	if result != nil && result.IsError {
		return "", aguiagent.NewToolError(text, nil)
	}
	return text, nil
}
