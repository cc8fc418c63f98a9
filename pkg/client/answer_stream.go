package client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/inkwellhq/inkwell/pkg/query"
	"github.com/inkwellhq/inkwell/pkg/stream"
)

// AnswerStream is one in-flight streaming answer. It owns the response body
// for the duration of the request: the connection is closed when the stream
// completes, fails, or the caller closes it early (e.g. on cancellation).
//
// An AnswerStream belongs to exactly one request and must not be shared
// across goroutines.
type AnswerStream struct {
	dec  *stream.Decoder
	body io.ReadCloser

	// failure is a pre-terminated single-event stream used when the
	// request never produced a body to decode.
	failure *stream.Event
}

// AskStream sends the question to the streaming ask endpoint. It never
// returns an error: transport failures surface as the stream's single
// terminal error event, so callers always consume one uniform event
// sequence. Cancel ctx to abandon the request; the stream ends without
// further events.
func (c *Client) AskStream(ctx context.Context, crit query.Criteria) *AnswerStream {
	resp, err := c.post(ctx, askStreamPath, crit.Payload())
	if err != nil {
		c.logger.Debug("ask stream request failed", "error", err)
		return &AnswerStream{failure: stream.TransportFailure(err)}
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4*1024))
		resp.Body.Close()
		err := fmt.Errorf("ask request failed (HTTP %d): %s", resp.StatusCode, string(body))
		return &AnswerStream{failure: stream.TransportFailure(err)}
	}

	return &AnswerStream{
		dec:  stream.NewDecoder(resp.Body),
		body: resp.Body,
	}
}

// Next returns the next answer event, or nil once the stream has ended.
// The connection is released automatically when the stream ends.
func (s *AnswerStream) Next() *stream.Event {
	if s.failure != nil {
		ev := s.failure
		s.failure = nil
		return ev
	}

	if s.dec == nil {
		return nil
	}

	ev := s.dec.Next()
	if ev == nil || ev.Type == stream.TypeError {
		_ = s.Close()
	}
	return ev
}

// Text returns the answer text accumulated so far.
func (s *AnswerStream) Text() string {
	if s.dec == nil {
		return ""
	}
	return s.dec.Text()
}

// Close releases the underlying connection. Safe to call more than once.
func (s *AnswerStream) Close() error {
	if s.body == nil {
		return nil
	}
	body := s.body
	s.body = nil
	return body.Close()
}
