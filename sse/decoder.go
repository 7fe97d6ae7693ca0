// Package sse decodes a server-sent event stream into typed AG-UI protocol
// events.
//
// The wire format is the standard text/event-stream framing: records are
// groups of field-prefixed lines ("event:", "data:", "id:", "retry:",
// comment lines starting with ":") terminated by a blank line. Each record
// carries one JSON-encoded protocol event in its data field; multi-line
// data is joined with newlines before parsing.
//
// Framing and payload parsing are decoupled: a malformed payload yields a
// [*DecodeError] for that record only, and the decoder keeps its position
// so subsequent records parse normally.
package sse

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/contextablemark/home-agui-agent/events"
)

// DecodeError reports a single malformed stream record. It never indicates
// a broken stream; callers log it and read on.
type DecodeError struct {
	// Data is the record's raw data payload, truncated for logging.
	Data string
	Err  error
}

// Error returns the decode error message.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("undecodable stream record: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// maxErrData bounds how much of a bad record is retained for logging.
const maxErrData = 200

// Decoder reads an SSE byte stream and yields protocol events one at a time.
// It is not safe for concurrent use; a stream has a single consumer.
type Decoder struct {
	r *bufio.Reader
}

// NewDecoder creates a Decoder reading from r, normally an HTTP response
// body with content type text/event-stream.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Next returns the next protocol event from the stream.
//
// It returns io.EOF when the transport closes cleanly, a [*DecodeError] for
// a record that could not be parsed (the stream remains usable), or the
// transport's own error if reading fails. An incomplete record pending at
// EOF is discarded, per the SSE specification.
func (d *Decoder) Next() (events.Event, error) {
	var eventName string
	var dataLines []string

	for {
		line, err := d.r.ReadString('\n')
		if err != nil {
			if err == io.EOF && line == "" {
				return nil, io.EOF
			}
			if err != io.EOF {
				return nil, err
			}
			// Final line without a trailing newline; fall through and let
			// the next read report EOF.
		}
		line = strings.TrimRight(line, "\r\n")

		switch {
		case line == "":
			if len(dataLines) > 0 {
				return d.decodeRecord(eventName, strings.Join(dataLines, "\n"))
			}
			// Blank line with no data: heartbeat, skip.
			eventName = ""
		case strings.HasPrefix(line, ":"):
			// Comment line, commonly used as keep-alive.
		case strings.HasPrefix(line, "event:"):
			eventName = strings.TrimSpace(line[len("event:"):])
		case strings.HasPrefix(line, "data:"):
			dataLines = append(dataLines, strings.TrimSpace(line[len("data:"):]))
		default:
			// Unknown field ("id:", "retry:", or future extensions): skip.
		}
	}
}

// decodeRecord parses one complete record's data into a typed event. The
// JSON type tag wins; the SSE event field is the fallback for payloads that
// omit it.
func (d *Decoder) decodeRecord(eventName, data string) (events.Event, error) {
	var tag struct {
		Type events.EventType `json:"type"`
	}
	if err := json.Unmarshal([]byte(data), &tag); err != nil {
		return nil, &DecodeError{Data: truncate(data), Err: err}
	}

	eventType := tag.Type
	if eventType == "" {
		if eventName == "" {
			return nil, &DecodeError{Data: truncate(data), Err: fmt.Errorf("record names no event type")}
		}
		eventType = events.EventType(eventName)
	}

	ev, err := events.FromJSONAs(eventType, []byte(data))
	if err != nil {
		return nil, &DecodeError{Data: truncate(data), Err: err}
	}
	if err := ev.Validate(); err != nil {
		return nil, &DecodeError{Data: truncate(data), Err: err}
	}
	return ev, nil
}

func truncate(s string) string {
	if len(s) > maxErrData {
		return s[:maxErrData]
	}
	return s
}
