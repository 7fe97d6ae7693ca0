package aguiagent

import (
	"errors"
	"fmt"
)

// ErrorKind classifies run failures by their origin.
type ErrorKind string

const (
	// ErrorTransport indicates the connection to the agent endpoint failed
	// (refused, DNS, TLS, reset mid-stream).
	ErrorTransport ErrorKind = "transport"

	// ErrorTimeout indicates the run exceeded its configured time bound.
	ErrorTimeout ErrorKind = "timeout"

	// ErrorDecode indicates a malformed stream record. Decode errors are
	// isolated per record and never terminate a run by themselves.
	ErrorDecode ErrorKind = "decode"

	// ErrorProtocol indicates an event sequence violation (unknown id,
	// duplicate start, event before RUN_STARTED). Downgraded to a logged
	// anomaly; the run continues.
	ErrorProtocol ErrorKind = "protocol"

	// ErrorTool indicates a tool invocation failed. Isolated to that tool
	// call and reported as a failed ToolResult; the run continues.
	ErrorTool ErrorKind = "tool"

	// ErrorBackend indicates the agent reported a failure via a RUN_ERROR
	// event or a non-success HTTP response.
	ErrorBackend ErrorKind = "backend"
)

// KindedError is an error that carries an ErrorKind.
type KindedError interface {
	error
	Kind() ErrorKind
	// Retryable reports whether retrying the whole operation may succeed.
	Retryable() bool
}

// Error is a categorized error with a human-readable reason.
type Error struct {
	Msg   string
	Knd   ErrorKind
	Cause error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Kind returns the error kind.
func (e *Error) Kind() ErrorKind {
	return e.Knd
}

// Retryable reports whether the error is worth retrying. Only transport
// failures qualify; backend-reported and protocol failures are terminal.
func (e *Error) Retryable() bool {
	return e.Knd == ErrorTransport
}

// NewTransportError creates a transport-kind error.
func NewTransportError(msg string, cause error) *Error {
	return &Error{Msg: msg, Knd: ErrorTransport, Cause: cause}
}

// NewTimeoutError creates a timeout-kind error.
func NewTimeoutError(msg string, cause error) *Error {
	return &Error{Msg: msg, Knd: ErrorTimeout, Cause: cause}
}

// NewDecodeError creates a decode-kind error.
func NewDecodeError(msg string, cause error) *Error {
	return &Error{Msg: msg, Knd: ErrorDecode, Cause: cause}
}

// NewProtocolError creates a protocol-kind error.
func NewProtocolError(msg string) *Error {
	return &Error{Msg: msg, Knd: ErrorProtocol}
}

// NewToolError creates a tool-kind error.
func NewToolError(msg string, cause error) *Error {
	return &Error{Msg: msg, Knd: ErrorTool, Cause: cause}
}

// NewBackendError creates a backend-kind error.
func NewBackendError(msg string) *Error {
	return &Error{Msg: msg, Knd: ErrorBackend}
}

// KindOf returns the kind of err, or "" if err carries no kind.
func KindOf(err error) ErrorKind {
	var ke KindedError
	if errors.As(err, &ke) {
		return ke.Kind()
	}
	return ""
}

// IsTransport returns true if err is categorized as a transport failure.
func IsTransport(err error) bool { return KindOf(err) == ErrorTransport }

// IsTimeout returns true if err is categorized as a timeout.
func IsTimeout(err error) bool { return KindOf(err) == ErrorTimeout }

// IsDecode returns true if err is categorized as a decode failure.
func IsDecode(err error) bool { return KindOf(err) == ErrorDecode }

// IsBackend returns true if err is categorized as a backend-reported failure.
func IsBackend(err error) bool { return KindOf(err) == ErrorBackend }
