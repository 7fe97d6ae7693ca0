// Package client runs conversation turns against a remote AG-UI agent
// endpoint.
//
// A [Client] POSTs a run request to the endpoint, consumes the SSE event
// stream, accumulates the agent's streamed text, and executes the agent's
// tool calls on the host side through a [tool.Executor]. Each call to
// [Client.Run] is one complete turn: it returns the final response text,
// the updated message list (tool results included, ready for the next
// turn), and the individual tool results.
//
//	c, err := client.New("http://agent.local:8000/agui",
//	    client.WithBearerToken(token),
//	    client.WithTimeout(60*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := c.Run(ctx, client.RunInput{
//	    Messages: []aguiagent.Message{
//	        {Role: aguiagent.RoleUser, Content: "Turn on the light"},
//	    },
//	    Tools: catalog.Tools(),
//	}, catalog)
//
// For multi-turn conversations, [Conversation] keeps the per-thread message
// history so each turn only needs the new user input.
package client
