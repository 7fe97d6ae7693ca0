package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	aguiagent "github.com/contextablemark/home-agui-agent"
	"github.com/contextablemark/home-agui-agent/retry"
	"github.com/contextablemark/home-agui-agent/run"
	"github.com/contextablemark/home-agui-agent/sse"
	"github.com/contextablemark/home-agui-agent/tool"
)

// maxErrorBody bounds how much of an HTTP error body is logged.
const maxErrorBody = 500

// Run executes one conversation turn: it sends the run request, consumes
// the event stream, and executes the agent's tool calls through exec.
//
// Tool calls are dispatched as soon as their arguments are complete, each
// on its own goroutine, bounded by the client's tool concurrency. All
// invocations are joined before Run returns.
//
// Run returns exactly one outcome: a RunResult when the agent finishes the
// run, or a categorized error on transport failure, timeout, an agent-
// reported error, or a stream that closes without a terminal event.
func (c *Client) Run(ctx context.Context, in RunInput, exec tool.Executor) (*RunResult, error) {
	if in.ThreadID == "" {
		in.ThreadID = aguiagent.GenerateThreadID()
	}
	if in.RunID == "" {
		in.RunID = aguiagent.GenerateRunID()
	}

	log := c.log.WithFields(logrus.Fields{"threadId": in.ThreadID, "runId": in.RunID})

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	emit(c.events, Event{Type: EventRunStart, ThreadID: in.ThreadID, RunID: in.RunID})

	result, err := c.runTurn(ctx, log, in, exec)
	if err != nil {
		emit(c.events, Event{
			Type:     EventRunError,
			ThreadID: in.ThreadID,
			RunID:    in.RunID,
			Duration: time.Since(start),
			Error:    err,
		})
		return nil, err
	}

	emit(c.events, Event{
		Type:     EventRunComplete,
		ThreadID: in.ThreadID,
		RunID:    in.RunID,
		Duration: time.Since(start),
	})
	return result, nil
}

func (c *Client) runTurn(ctx context.Context, log logrus.FieldLogger, in RunInput, exec tool.Executor) (*RunResult, error) {
	body, err := json.Marshal(buildRunAgentInput(in))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal run request: %w", err)
	}

	resp, err := c.openStream(ctx, log, in, body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, timeoutOrCanceled(ctx, err)
		}
		return nil, err
	}
	defer resp.Body.Close()

	machine := run.New(run.WithLogger(log))

	// Tool invocations run concurrently; results are keyed by toolCallId and
	// reassembled in dispatch order after the join.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.toolConcurrency)
	var mu sync.Mutex
	results := make(map[string]aguiagent.ToolResult)
	var dispatchOrder []string

	dispatch := func(req aguiagent.ToolRequest) {
		dispatchOrder = append(dispatchOrder, req.ID)
		g.Go(func() error {
			invStart := time.Now()
			res := tool.Invoke(gctx, exec, req)
			mu.Lock()
			results[req.ID] = res
			mu.Unlock()
			emit(c.events, Event{
				Type:     EventToolInvoked,
				ThreadID: in.ThreadID,
				RunID:    in.RunID,
				Tool:     req.Name,
				Duration: time.Since(invStart),
			})
			return nil
		})
	}

	dec := sse.NewDecoder(resp.Body)
	var streamErr error

	for {
		ev, err := dec.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			var de *sse.DecodeError
			if errors.As(err, &de) {
				log.WithError(de).WithField("data", de.Data).Warn("skipping undecodable stream record")
				continue
			}
			streamErr = err
			break
		}

		for _, req := range machine.Apply(ev) {
			dispatch(req)
		}
		if machine.Status().Terminal() {
			break
		}
	}

	// Join every in-flight invocation before settling the outcome; the
	// handlers never return errors, so Wait only synchronizes.
	_ = g.Wait()

	if streamErr != nil {
		if ctx.Err() != nil {
			return nil, timeoutOrCanceled(ctx, streamErr)
		}
		return nil, aguiagent.NewTransportError("failed reading event stream", streamErr)
	}

	switch machine.Status() {
	case run.StatusErrored:
		return nil, machine.Err()

	case run.StatusFinished:
		toolResults := make([]aguiagent.ToolResult, 0, len(dispatchOrder))
		messages := append([]aguiagent.Message(nil), in.Messages...)
		for _, id := range dispatchOrder {
			res := results[id]
			toolResults = append(toolResults, res)
			messages = append(messages, aguiagent.NewToolResultMessage(res))
		}

		return &RunResult{
			ThreadID:     machine.ThreadID(),
			RunID:        machine.RunID(),
			ResponseText: machine.ResponseText(),
			Messages:     messages,
			ToolResults:  toolResults,
			Anomalies:    machine.Anomalies(),
		}, nil

	default:
		if ctx.Err() != nil {
			return nil, timeoutOrCanceled(ctx, ctx.Err())
		}
		return nil, aguiagent.NewProtocolError("event stream closed before the run completed")
	}
}

// openStream POSTs the run request and returns the live response stream.
// Connection establishment is retried on transient errors; anything past a
// 200 response is never retried.
func (c *Client) openStream(ctx context.Context, log logrus.FieldLogger, in RunInput, body []byte) (*http.Response, error) {
	var retryEvents chan retry.Event
	if c.events != nil {
		retryEvents = make(chan retry.Event, 10)
		go c.forwardRetryEvents(retryEvents, in)
	}

	resp, err := retry.DoWithEvents(ctx, c.retryConfig, retryEvents, func() (*http.Response, error) {
		return c.postRun(ctx, log, body)
	})

	if retryEvents != nil {
		close(retryEvents)
	}
	return resp, err
}

func (c *Client) postRun(ctx context.Context, log logrus.FieldLogger, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create run request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	c.setAuth(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, aguiagent.NewTransportError("failed to connect to agent endpoint", err)
	}

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		resp.Body.Close()
		log.WithFields(logrus.Fields{
			"status": resp.StatusCode,
			"body":   string(errBody),
		}).Error("agent endpoint returned an error")
		return nil, aguiagent.NewBackendError(fmt.Sprintf("remote endpoint error: %d", resp.StatusCode))
	}

	return resp, nil
}

// forwardRetryEvents republishes connection retry events on the client's
// observability channel.
func (c *Client) forwardRetryEvents(retryEvents <-chan retry.Event, in RunInput) {
	for re := range retryEvents {
		reCopy := re
		emit(c.events, Event{
			Type:       EventRetry,
			ThreadID:   in.ThreadID,
			RunID:      in.RunID,
			RetryEvent: &reCopy,
		})
	}
}

// timeoutOrCanceled maps a context expiry to the matching error kind.
func timeoutOrCanceled(ctx context.Context, cause error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return aguiagent.NewTimeoutError("run exceeded the configured timeout", cause)
	}
	return aguiagent.NewTransportError("run canceled", cause)
}
