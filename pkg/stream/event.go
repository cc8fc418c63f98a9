// Package stream decodes the answer byte stream produced by the inkwell
// backend's ask endpoints. The backend interleaves ordinary answer text with
// in-band control markers (model selection, truncation, error), and this
// package classifies each transport fragment into a high-level event for a
// renderer to consume incrementally.
//
// Control markers are a reserved literal prefix on a fragment. A marker is
// expected to arrive whole within a single fragment; the wire format never
// splits one across fragment boundaries, and the decoder does not attempt to
// reassemble a split marker.
package stream

import "fmt"

// Backend control markers embedded in the answer stream.
const (
	markerModelUsed = "__model_used__:"
	markerError     = "__error__"
	markerTruncated = "__truncated__"
)

// User-facing notices for control events.
const (
	// BackendFailureMessage is shown when the backend signals an explicit
	// error marker mid-stream.
	BackendFailureMessage = "Request failed. Please try again later."

	// TruncatedMessage is shown when the answer was cut short by the
	// backend's token limit.
	TruncatedMessage = "AI response truncated due to token limit."
)

// Type discriminates Event variants.
type Type string

const (
	// TypeText carries the running concatenation of all answer text
	// received so far, not just the newest fragment.
	TypeText Type = "text"

	// TypeModel reports which model actually served the request. Emitted
	// when the backend routes automatically.
	TypeModel Type = "model"

	// TypeTruncated signals the answer was cut short. Not terminal;
	// decoding continues.
	TypeTruncated Type = "truncated"

	// TypeError is terminal. No further events follow it on a stream.
	TypeError Type = "error"
)

// Event is one decoded answer event. Exactly one of the payload fields is
// meaningful depending on Type.
type Event struct {
	Type Type

	// Text is the cumulative answer text (TypeText).
	Text string

	// Model is the model name reported by the backend (TypeModel).
	Model string

	// Message is a human-readable notice (TypeTruncated, TypeError).
	Message string
}

// TransportFailure builds the terminal error event for a transport-level
// failure (connection error, bad status, timeout).
func TransportFailure(err error) *Event {
	return &Event{
		Type:    TypeError,
		Message: fmt.Sprintf("Request failed: %v", err),
	}
}
