// Package client is the HTTP client for the inkwell backend's search and
// ask endpoints.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/inkwellhq/inkwell/pkg/query"
	"github.com/inkwellhq/inkwell/pkg/stream"
)

const (
	searchPath    = "/search/unique-titles"
	askPath       = "/search/ask"
	askStreamPath = "/search/ask/stream"
)

// Article is one search result row from the backend.
type Article struct {
	Title         string   `json:"title"`
	FeedName      string   `json:"feed_name"`
	FeedAuthor    string   `json:"feed_author"`
	ArticleAuthor []string `json:"article_author"`
	URL           string   `json:"url"`
}

// searchResponse is the backend's search envelope.
type searchResponse struct {
	Results []Article `json:"results"`
}

// Client talks to one backend instance. Safe for concurrent use; each
// streaming request gets its own decoder state.
type Client struct {
	target string
	httpc  *http.Client
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithLogger sets the client's logger. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the backend at target (scheme + host + port).
func New(target string, opts ...Option) *Client {
	c := &Client{
		target: strings.TrimRight(target, "/"),
		httpc: &http.Client{
			// LLM responses can be slow.
			Timeout: 5 * time.Minute,
		},
		logger: slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SearchTitles fetches unique article titles matching the criteria.
func (c *Client) SearchTitles(ctx context.Context, crit query.Criteria) ([]Article, error) {
	resp, err := c.post(ctx, searchPath, crit.Payload())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch titles: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search request failed (HTTP %d): %s", resp.StatusCode, string(body))
	}

	var out searchResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	return out.Results, nil
}

// Ask sends the question to the non-streaming ask endpoint and returns the
// single complete answer.
func (c *Client) Ask(ctx context.Context, crit query.Criteria) (*stream.Completion, error) {
	resp, err := c.post(ctx, askPath, crit.Payload())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading ask response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ask request failed (HTTP %d): %s", resp.StatusCode, string(body))
	}

	var completion stream.Completion
	if err := json.Unmarshal(body, &completion); err != nil {
		return nil, fmt.Errorf("parsing ask response: %w", err)
	}

	return &completion, nil
}

// post sends a JSON POST to the backend.
func (c *Client) post(ctx context.Context, path string, payload query.Payload) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.target+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("sending backend request",
		"path", path,
		"query_text", payload.QueryText,
		"limit", payload.Limit,
	)

	return c.httpc.Do(req)
}
