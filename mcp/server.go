package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/contextablemark/home-agui-agent/tool"
)

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

type serverConfig struct {
	name    string
	version string
}

// WithName sets the server name reported to MCP clients.
func WithName(name string) ServerOption {
	return func(c *serverConfig) {
		c.name = name
	}
}

// WithVersion sets the server version reported to MCP clients.
func WithVersion(version string) ServerOption {
	return func(c *serverConfig) {
		c.version = version
	}
}

// NewServer creates an MCP server exposing every tool in the catalog, so
// MCP clients can discover and call the host's tools without going through
// an agent run.
//
// Example:
//
//	catalog := tool.NewStaticCatalog()
//	catalog.MustRegister(tool.HostTool{Name: "HassTurnOn"}, turnOnHandler)
//
//	s := mcp.NewServer(catalog, mcp.WithName("home-tools"))
//	server.ServeStdio(s)
func NewServer(catalog *tool.StaticCatalog, opts ...ServerOption) *server.MCPServer {
	cfg := &serverConfig{
		name:    "home-agui-agent",
		version: "1.0.0",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	s := server.NewMCPServer(
		cfg.name,
		cfg.version,
		server.WithToolCapabilities(true),
	)

	for _, t := range catalog.Tools() {
		s.AddTool(ToServerTool(t), serverHandler(catalog, t.Name))
	}

	return s
}

// serverHandler wraps one catalog tool as an MCP tool handler.
func serverHandler(catalog *tool.StaticCatalog, name string) func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		if args == nil {
			args = map[string]any{}
		}

		content, err := catalog.Execute(ctx, name, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(content), nil
	}
}

// ServeStdio serves the catalog's tools over stdin/stdout, the standard
// transport for MCP servers invoked as subprocesses.
func ServeStdio(catalog *tool.StaticCatalog, opts ...ServerOption) error {
	return server.ServeStdio(NewServer(catalog, opts...))
}
