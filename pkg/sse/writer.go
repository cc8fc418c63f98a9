package sse

import (
	"encoding/json"
	"fmt"
	"io"
)

// flusher is implemented by buffered writers (e.g. *bufio.Writer) that need
// an explicit flush for bytes to reach the client mid-stream.
type flusher interface {
	Flush() error
}

// Writer sends Server-Sent Events to an io.Writer. If the writer supports
// flushing, every event is flushed immediately so the client sees deltas
// as they arrive rather than in one final burst.
type Writer struct {
	w io.Writer
}

// NewWriter returns a Writer that emits SSE frames to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// SendEvent writes a named SSE event with JSON data.
func (s *Writer) SendEvent(event string, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal SSE data: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		return err
	}
	return s.flush()
}

// SendData writes an unnamed SSE event (event type = "message") with JSON data.
func (s *Writer) SendData(data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal SSE data: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", jsonData); err != nil {
		return err
	}
	return s.flush()
}

// SendComment writes an SSE comment (for keep-alive pings).
func (s *Writer) SendComment(text string) error {
	if _, err := fmt.Fprintf(s.w, ": %s\n\n", text); err != nil {
		return err
	}
	return s.flush()
}

func (s *Writer) flush() error {
	if f, ok := s.w.(flusher); ok {
		return f.Flush()
	}
	return nil
}
