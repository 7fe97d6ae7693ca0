// Package run contains the per-run state machine that folds an ordered AG-UI
// event stream into accumulated response text and materialized tool requests.
//
// A Machine is owned by exactly one run and consumed sequentially; it does no
// I/O and never blocks, which keeps it testable without a live transport.
// Sequencing violations (events before RUN_STARTED, unknown or duplicate
// identifiers) are absorbed as logged anomalies rather than failures: a
// single bad delta must not discard an otherwise-successful turn.
package run

import (
	"encoding/json"
	"strings"

	"github.com/sirupsen/logrus"

	aguiagent "github.com/contextablemark/home-agui-agent"
	"github.com/contextablemark/home-agui-agent/events"
)

// Status is the lifecycle state of a run.
type Status int

const (
	StatusNotStarted Status = iota
	StatusRunning
	StatusFinished
	StatusErrored
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	case StatusErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run has reached a terminal status.
func (s Status) Terminal() bool {
	return s == StatusFinished || s == StatusErrored
}

type pendingMessage struct {
	id  string
	buf strings.Builder
}

type pendingCall struct {
	id   string
	name string
	args strings.Builder
}

// Machine accumulates one run's streamed text and tool calls.
//
// Pending buffers are keyed by messageId/toolCallId so interleaved streams
// for distinct identifiers accumulate independently. Completed text segments
// are kept in event order; the final response text is their concatenation.
type Machine struct {
	log logrus.FieldLogger

	status   Status
	threadID string
	runID    string
	errMsg   string

	pendingText  map[string]*pendingMessage
	textOrder    []string
	segments     []string
	pendingCalls map[string]*pendingCall
	callOrder    []string

	anomalies int
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger used for anomaly and trace output.
func WithLogger(log logrus.FieldLogger) Option {
	return func(m *Machine) {
		m.log = log
	}
}

// New creates a state machine for a single run.
func New(opts ...Option) *Machine {
	m := &Machine{
		log:          logrus.StandardLogger(),
		pendingText:  make(map[string]*pendingMessage),
		pendingCalls: make(map[string]*pendingCall),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Status returns the run's current lifecycle status.
func (m *Machine) Status() Status {
	return m.status
}

// ThreadID returns the thread identifier carried by RUN_STARTED, if seen.
func (m *Machine) ThreadID() string {
	return m.threadID
}

// RunID returns the run identifier carried by RUN_STARTED, if seen.
func (m *Machine) RunID() string {
	return m.runID
}

// Err returns the backend-reported failure after a RUN_ERROR event, or nil.
func (m *Machine) Err() error {
	if m.status != StatusErrored {
		return nil
	}
	return aguiagent.NewBackendError(m.errMsg)
}

// ResponseText returns the accumulated response text: every completed (or
// force-finalized) text segment concatenated in event order.
func (m *Machine) ResponseText() string {
	return strings.Join(m.segments, "")
}

// Anomalies returns how many protocol violations were absorbed.
func (m *Machine) Anomalies() int {
	return m.anomalies
}

// Apply folds the next event into the run state. It returns any tool
// requests materialized by the event: normally at most one, but a forced
// finalization on RUN_FINISHED can flush several.
//
// Events are applied strictly in arrival order; Apply never blocks and is
// not safe for concurrent use.
func (m *Machine) Apply(ev events.Event) []aguiagent.ToolRequest {
	if m.status.Terminal() {
		m.anomaly("event after terminal state", logrus.Fields{"event": ev.Type()})
		return nil
	}

	if m.status == StatusNotStarted {
		started, ok := ev.(*events.RunStartedEvent)
		if !ok {
			m.anomaly("event before RUN_STARTED", logrus.Fields{"event": ev.Type()})
			return nil
		}
		m.status = StatusRunning
		m.threadID = started.ThreadID
		m.runID = started.RunID
		m.log.WithFields(logrus.Fields{"threadId": m.threadID, "runId": m.runID}).
			Debug("agent run started")
		return nil
	}

	switch e := ev.(type) {
	case *events.RunStartedEvent:
		m.anomaly("duplicate RUN_STARTED", logrus.Fields{"runId": e.RunID})

	case *events.TextMessageStartEvent:
		m.openMessage(e.MessageID)

	case *events.TextMessageContentEvent:
		if p, ok := m.pendingText[e.MessageID]; ok {
			p.buf.WriteString(e.Delta)
		} else {
			m.anomaly("content for unknown message", logrus.Fields{"messageId": e.MessageID})
		}

	case *events.TextMessageEndEvent:
		if !m.closeMessage(e.MessageID) {
			m.anomaly("end for unknown message", logrus.Fields{"messageId": e.MessageID})
		}

	case *events.ToolCallStartEvent:
		m.openCall(e.ToolCallID, e.ToolCallName)

	case *events.ToolCallArgsEvent:
		if p, ok := m.pendingCalls[e.ToolCallID]; ok {
			p.args.WriteString(e.Delta)
		} else {
			m.anomaly("args for unknown tool call", logrus.Fields{"toolCallId": e.ToolCallID})
		}

	case *events.ToolCallEndEvent:
		if req, ok := m.closeCall(e.ToolCallID); ok {
			return []aguiagent.ToolRequest{req}
		}
		m.anomaly("end for unknown tool call", logrus.Fields{"toolCallId": e.ToolCallID})

	case *events.RunFinishedEvent:
		return m.finish()

	case *events.RunErrorEvent:
		m.status = StatusErrored
		m.errMsg = e.Message
		m.log.WithField("message", e.Message).Error("agent run error")

	case *events.ToolCallResultEvent:
		// Backend-executed tool; nothing for the client to do.
		m.log.WithField("toolCallId", e.ToolCallID).Debug("tool result from agent")

	case *events.StepStartedEvent:
		m.log.WithField("step", e.StepName).Debug("step started")

	case *events.StepFinishedEvent:
		m.log.WithField("step", e.StepName).Debug("step finished")

	case *events.StateSnapshotEvent, *events.StateDeltaEvent:
		m.log.WithField("event", ev.Type()).Debug("state event ignored")

	case *events.RawEvent:
		m.log.WithField("event", ev.Type()).Debug("unrecognized event ignored")

	default:
		m.log.WithField("event", ev.Type()).Debug("unhandled event")
	}

	return nil
}

// openMessage starts accumulating a text message. A duplicate start for an
// open id resets the buffer (last writer wins).
func (m *Machine) openMessage(id string) {
	if _, exists := m.pendingText[id]; exists {
		m.anomaly("duplicate TEXT_MESSAGE_START, restarting buffer", logrus.Fields{"messageId": id})
		m.dropTextOrder(id)
	}
	m.pendingText[id] = &pendingMessage{id: id}
	m.textOrder = append(m.textOrder, id)
}

// closeMessage finalizes a pending message into the text ledger.
func (m *Machine) closeMessage(id string) bool {
	p, ok := m.pendingText[id]
	if !ok {
		return false
	}
	m.segments = append(m.segments, p.buf.String())
	delete(m.pendingText, id)
	m.dropTextOrder(id)
	return true
}

func (m *Machine) dropTextOrder(id string) {
	for i, other := range m.textOrder {
		if other == id {
			m.textOrder = append(m.textOrder[:i], m.textOrder[i+1:]...)
			return
		}
	}
}

// openCall starts accumulating a tool call. A duplicate start for an open
// id resets the buffer (last writer wins).
func (m *Machine) openCall(id, name string) {
	if _, exists := m.pendingCalls[id]; exists {
		m.anomaly("duplicate TOOL_CALL_START, restarting buffer", logrus.Fields{"toolCallId": id})
		m.dropCallOrder(id)
	}
	m.pendingCalls[id] = &pendingCall{id: id, name: name}
	m.callOrder = append(m.callOrder, id)
	m.log.WithFields(logrus.Fields{"toolCallId": id, "tool": name}).Debug("tool call started")
}

// closeCall finalizes a pending tool call into a materialized request.
func (m *Machine) closeCall(id string) (aguiagent.ToolRequest, bool) {
	p, ok := m.pendingCalls[id]
	if !ok {
		return aguiagent.ToolRequest{}, false
	}
	delete(m.pendingCalls, id)
	m.dropCallOrder(id)
	return m.materialize(p), true
}

func (m *Machine) dropCallOrder(id string) {
	for i, other := range m.callOrder {
		if other == id {
			m.callOrder = append(m.callOrder[:i], m.callOrder[i+1:]...)
			return
		}
	}
}

// materialize parses a pending call's accumulated argument fragments.
// Parsing is deferred to this point by design: fragments are arbitrary JSON
// substrings, so only the full concatenation can be judged. A parse failure
// marks the request instead of failing the run; the invocation bridge turns
// the marker into a failed tool result.
func (m *Machine) materialize(p *pendingCall) aguiagent.ToolRequest {
	req := aguiagent.ToolRequest{
		ID:           p.id,
		Name:         p.name,
		RawArguments: p.args.String(),
	}

	if req.RawArguments == "" {
		req.Arguments = map[string]any{}
		return req
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(req.RawArguments), &args); err != nil {
		m.log.WithFields(logrus.Fields{
			"toolCallId": p.id,
			"tool":       p.name,
		}).Warn("failed to parse tool arguments")
		req.ParseErr = aguiagent.NewDecodeError("failed to parse tool arguments", err)
		return req
	}
	req.Arguments = args
	return req
}

// finish handles RUN_FINISHED. Pending buffers are force-finalized with
// whatever partial content they hold; partial output is worth more than
// silence, and the backend closing a run with open buffers is itself an
// anomaly worth logging.
func (m *Machine) finish() []aguiagent.ToolRequest {
	var flushed []aguiagent.ToolRequest

	for _, id := range append([]string(nil), m.textOrder...) {
		m.anomaly("run finished with unfinished text message", logrus.Fields{"messageId": id})
		m.closeMessage(id)
	}
	for _, id := range append([]string(nil), m.callOrder...) {
		m.anomaly("run finished with unfinished tool call", logrus.Fields{"toolCallId": id})
		if req, ok := m.closeCall(id); ok {
			flushed = append(flushed, req)
		}
	}

	m.status = StatusFinished
	m.log.Debug("agent run finished")
	return flushed
}

func (m *Machine) anomaly(msg string, fields logrus.Fields) {
	m.anomalies++
	m.log.WithFields(fields).Warn("protocol anomaly: " + msg)
}
