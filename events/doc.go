// Package events defines the typed AG-UI protocol events exchanged on the
// server-to-client stream, and their JSON decoding.
//
// Every wire record is a JSON object with a "type" tag naming one of the
// protocol event types, plus type-specific fields. [FromJSON] decodes a
// record into the matching concrete event struct. Unrecognized types decode
// into [*RawEvent] so that newer backends never break older clients.
//
// Events are self-contained: no event carries state from a prior event
// except through the shared identifier fields (messageId, toolCallId).
// Correlation and accumulation are the job of the run package, not this one.
package events
