// Package aguiagent provides a client-side implementation of the AG-UI
// protocol for connecting a smart-home host to remote agent backends.
//
// AG-UI (Agent-User Interface) is an open, event-based protocol that
// standardizes how user-facing applications talk to AI agents. The host
// owns the UI and the tools; the remote agent decides what to say and
// which tools to call. This module implements the frontend half of that
// contract: it sends a single run request, consumes the server-sent event
// stream, accumulates streamed text and tool-call requests, executes tools
// locally, and returns one aggregated result per run.
//
// # Packages
//
//   - [github.com/contextablemark/home-agui-agent/client]: the run
//     orchestrator and HTTP/SSE transport. Start here.
//   - [github.com/contextablemark/home-agui-agent/events]: typed protocol
//     events and JSON decoding.
//   - [github.com/contextablemark/home-agui-agent/sse]: the server-sent
//     event stream decoder.
//   - [github.com/contextablemark/home-agui-agent/run]: the per-run state
//     machine that turns events into accumulated text and materialized
//     tool requests.
//   - [github.com/contextablemark/home-agui-agent/tool]: the host tool
//     catalog mapping and the tool invocation bridge.
//   - [github.com/contextablemark/home-agui-agent/mcp]: an MCP-backed tool
//     catalog and executor.
//
// # Basic Usage
//
// Run a single conversation turn against a remote agent:
//
//	c, err := client.New("https://agent.example.com/awp",
//	    client.WithBearerToken(os.Getenv("AGUI_BEARER_TOKEN")),
//	    client.WithTimeout(2*time.Minute),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	catalog := tool.NewStaticCatalog()
//	catalog.MustRegister(tool.HostTool{
//	    Name:        "HassTurnOn",
//	    Description: "Turn on a device",
//	    Schema:      map[string]any{"type": "object"},
//	}, turnOnHandler)
//
//	result, err := c.Run(ctx, client.RunInput{
//	    ThreadID: aguiagent.GenerateThreadID(),
//	    Messages: []aguiagent.Message{
//	        {Role: aguiagent.RoleUser, Content: "Turn on the kitchen light"},
//	    },
//	    Tools: catalog.Tools(),
//	}, catalog)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.ResponseText)
//
// The executor is any implementation of [tool.Executor]; it receives the
// tool name and parsed arguments and performs the host-side action. Tool
// failures never fail the run: they come back as error-flagged
// [ToolResult] values that the agent can react to on the next turn.
package aguiagent
