package stream

import "strings"

// FinishReasonLength is the backend finish_reason value signalling the
// answer hit the token limit.
const FinishReasonLength = "length"

// Completion is the single complete response returned by the non-streaming
// ask endpoint.
type Completion struct {
	Answer       string `json:"answer"`
	FinishReason string `json:"finish_reason,omitempty"`

	// Model is surfaced as a separate response field in non-streaming
	// mode; there is no in-band model marker on this path.
	Model string `json:"model,omitempty"`
}

// DecodeCompletion translates a complete response into the same event
// sequence the streaming decoder would produce: an optional model event,
// exactly one text event carrying the full answer, and a truncation notice
// when the backend stopped at the token limit.
func DecodeCompletion(c Completion) []*Event {
	var events []*Event

	if name := strings.TrimSpace(c.Model); name != "" {
		events = append(events, &Event{Type: TypeModel, Model: name})
	}

	events = append(events, &Event{Type: TypeText, Text: c.Answer})

	if c.FinishReason == FinishReasonLength {
		events = append(events, &Event{Type: TypeTruncated, Message: TruncatedMessage})
	}

	return events
}
