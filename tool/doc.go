// Package tool bridges host-side tools into agent runs.
//
// This package includes:
//   - HostTool and Translate for turning host tool descriptors into the
//     wire-format descriptors advertised to the agent
//   - Catalog, a read-only view over the tools a host exposes, with
//     StaticCatalog as the in-memory implementation
//   - Executor, the host callback that actually runs a tool, and Invoke,
//     which turns a streamed tool request into a result the agent can use
//
// # Basic Usage
//
// Describe host tools, build a catalog, and hand its descriptors plus an
// executor to the client:
//
//	catalog := tool.NewStaticCatalog()
//	catalog.MustRegister(tool.HostTool{
//	    Name:        "HassTurnOn",
//	    Description: "Turns on a device or entity",
//	    Schema: map[string]any{
//	        "type": "object",
//	        "properties": map[string]any{
//	            "domain": map[string]any{"type": "array"},
//	        },
//	    },
//	}, turnOnHandler)
//
//	result, err := client.Run(ctx, client.RunInput{
//	    Messages: msgs,
//	    Tools:    catalog.Tools(),
//	}, catalog)
//
// Execution errors never abort a run: Invoke captures handler failures as
// error-flagged results so the agent can see what went wrong and recover.
package tool
