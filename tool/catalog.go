package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	aguiagent "github.com/contextablemark/home-agui-agent"
)

// HostTool describes a tool as the host knows it: a name, a human-readable
// description, and a JSON-schema-shaped parameter definition. The schema is
// held as an arbitrary value so hosts can pass whatever structure their own
// tool layer produces.
type HostTool struct {
	Name        string
	Description string
	Schema      any
}

// Translate converts a host tool descriptor into the wire descriptor
// advertised to the agent. The schema is serialized as-is; nothing is
// reshaped or dropped, so whatever vocabulary the host schema uses survives
// the round trip. A nil schema becomes an empty object schema.
func Translate(ht HostTool) (aguiagent.Tool, error) {
	if ht.Name == "" {
		return aguiagent.Tool{}, fmt.Errorf("host tool has no name")
	}

	params := json.RawMessage(`{"type":"object","properties":{}}`)
	if ht.Schema != nil {
		raw, err := json.Marshal(ht.Schema)
		if err != nil {
			return aguiagent.Tool{}, fmt.Errorf("serializing schema for tool %q: %w", ht.Name, err)
		}
		params = raw
	}

	return aguiagent.Tool{
		Name:        ht.Name,
		Description: ht.Description,
		Parameters:  params,
	}, nil
}

// TranslateAll converts a slice of host tools, preserving order. It fails on
// the first tool that cannot be translated.
func TranslateAll(hts []HostTool) ([]aguiagent.Tool, error) {
	tools := make([]aguiagent.Tool, 0, len(hts))
	for _, ht := range hts {
		t, err := Translate(ht)
		if err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, nil
}

// Catalog is a read-only view over the tools a host exposes to the agent.
type Catalog interface {
	// Tools returns the wire descriptors for every exposed tool.
	Tools() []aguiagent.Tool
}

// registeredTool pairs a translated descriptor with its handler.
type registeredTool struct {
	tool    aguiagent.Tool
	handler Handler
}

// StaticCatalog is an in-memory catalog that doubles as an [Executor] for
// the tools registered on it. It is safe for concurrent use.
type StaticCatalog struct {
	mu    sync.RWMutex
	tools map[string]registeredTool
	order []string
}

// NewStaticCatalog creates an empty catalog.
func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{
		tools: make(map[string]registeredTool),
	}
}

// Register translates and adds a host tool with its handler.
// Returns an error if a tool with the same name is already registered.
func (c *StaticCatalog) Register(ht HostTool, handler Handler) error {
	t, err := Translate(ht)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.tools[t.Name]; exists {
		return &AlreadyRegisteredError{Name: t.Name}
	}
	c.tools[t.Name] = registeredTool{tool: t, handler: handler}
	c.order = append(c.order, t.Name)
	return nil
}

// MustRegister is like Register but panics on error.
func (c *StaticCatalog) MustRegister(ht HostTool, handler Handler) {
	if err := c.Register(ht, handler); err != nil {
		panic(err)
	}
}

// Tools returns the wire descriptors in registration order.
func (c *StaticCatalog) Tools() []aguiagent.Tool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tools := make([]aguiagent.Tool, 0, len(c.order))
	for _, name := range c.order {
		tools = append(tools, c.tools[name].tool)
	}
	return tools
}

// Names returns the registered tool names in registration order.
func (c *StaticCatalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]string(nil), c.order...)
}

// Len returns the number of registered tools.
func (c *StaticCatalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tools)
}

// Execute runs the named tool's handler. It implements [Executor], so a
// populated catalog can be passed directly to the client's run loop.
func (c *StaticCatalog) Execute(ctx context.Context, name string, args map[string]any) (string, error) {
	c.mu.RLock()
	rt, ok := c.tools[name]
	c.mu.RUnlock()

	if !ok {
		return "", &NotFoundError{Name: name}
	}
	return rt.handler(ctx, args)
}
