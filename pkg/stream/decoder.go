package stream

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
)

// Decoder turns the raw fragment sequence from one ask/stream response body
// into an ordered sequence of Events. Each call to the underlying reader
// yields one fragment, and each fragment produces at most one event, so the
// decoder emits incrementally without buffering the response.
//
// A Decoder owns its accumulation state and must not be shared across
// concurrent requests; every request gets a fresh Decoder.
type Decoder struct {
	r   io.Reader
	buf []byte

	acc        strings.Builder
	pendingErr error
	done       bool
}

// NewDecoder returns a Decoder reading fragments from r. The caller retains
// ownership of r and is responsible for closing it once decoding ends.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{
		r:   r,
		buf: make([]byte, 32*1024),
	}
}

// Next returns the next decoded event, blocking until a fragment arrives.
// It returns nil once the stream is exhausted or terminated.
//
// Transport read failures are converted into a single terminal TypeError
// event rather than surfaced as an error; Next never fails past its own
// boundary. Caller-initiated cancellation (context cancellation or a closed
// connection) ends the stream silently with no further events.
func (d *Decoder) Next() *Event {
	for !d.done {
		if d.pendingErr != nil {
			return d.finish(d.pendingErr)
		}

		n, err := d.r.Read(d.buf)

		var ev *Event
		if n > 0 {
			ev = d.classify(string(d.buf[:n]))
		}

		if err != nil {
			if ev != nil {
				// Deliver the fragment's event first; the error
				// surfaces on the following call.
				d.pendingErr = err
				return ev
			}
			return d.finish(err)
		}

		if ev != nil {
			return ev
		}

		// Empty fragment: ignored, keep reading.
	}

	return nil
}

// Text returns the answer text accumulated so far. After the stream ends it
// holds the complete answer.
func (d *Decoder) Text() string {
	return d.acc.String()
}

// classify applies the marker grammar to a single non-empty fragment.
// Marker detection is a pure prefix test on the untrimmed fragment.
func (d *Decoder) classify(fragment string) *Event {
	switch {
	case fragment == "":
		return nil

	case strings.HasPrefix(fragment, markerModelUsed):
		name := strings.TrimSpace(strings.TrimPrefix(fragment, markerModelUsed))
		return &Event{Type: TypeModel, Model: name}

	case strings.HasPrefix(fragment, markerError):
		d.done = true
		return &Event{Type: TypeError, Message: BackendFailureMessage}

	case strings.HasPrefix(fragment, markerTruncated):
		return &Event{Type: TypeTruncated, Message: TruncatedMessage}

	default:
		d.acc.WriteString(fragment)
		return &Event{Type: TypeText, Text: d.acc.String()}
	}
}

// finish terminates the stream for the given transport error. A clean EOF
// and caller-initiated cancellation end the stream without an event; any
// other failure becomes the single terminal error event.
func (d *Decoder) finish(err error) *Event {
	d.done = true

	if errors.Is(err, io.EOF) {
		return nil
	}
	if errors.Is(err, context.Canceled) ||
		errors.Is(err, net.ErrClosed) ||
		errors.Is(err, io.ErrClosedPipe) {
		return nil
	}

	return TransportFailure(err)
}
