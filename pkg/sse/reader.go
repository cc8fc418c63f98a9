package sse

import (
	"bufio"
	"io"
	"strings"
)

// Reader parses SSE events from a byte stream.
type Reader struct {
	scanner *bufio.Scanner

	// current accumulates fields for the event being built in the current scan.
	current *Event
	hasData bool
}

// NewReader returns a Reader that parses SSE events from src.
func NewReader(src io.Reader) *Reader {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	return &Reader{
		scanner: scanner,
		current: &Event{},
	}
}

// Next returns the next parsed SSE event. It blocks until a complete event
// is available (terminated by a blank line in the stream).
// Next returns nil, nil when the source is exhausted.
func (r *Reader) Next() (*Event, error) {
	for r.scanner.Scan() {
		raw := r.scanner.Text()

		// Blank line terminates the current event.
		if raw == "" {
			if r.hasData || r.current.Type != "" || r.current.ID != "" {
				ev := r.current
				r.current = &Event{}
				r.hasData = false
				return ev, nil
			}
			continue
		}

		// Comment lines start with a colon and are ignored.
		if strings.HasPrefix(raw, ":") {
			continue
		}

		field, value := splitField(raw)
		switch field {
		case "event":
			r.current.Type = value
		case "data":
			if r.hasData {
				r.current.Data += "\n" + value
			} else {
				r.current.Data = value
				r.hasData = true
			}
		case "id":
			r.current.ID = value
		}
	}

	if err := r.scanner.Err(); err != nil {
		return nil, err
	}

	// Stream ended without a trailing blank line; emit what we have.
	if r.hasData || r.current.Type != "" || r.current.ID != "" {
		ev := r.current
		r.current = &Event{}
		r.hasData = false
		return ev, nil
	}

	return nil, nil
}

// splitField splits an SSE line into field name and value, stripping the
// single optional space after the colon per the spec.
func splitField(line string) (string, string) {
	name, value, found := strings.Cut(line, ":")
	if !found {
		return line, ""
	}
	return name, strings.TrimPrefix(value, " ")
}
