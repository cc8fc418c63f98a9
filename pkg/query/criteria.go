// Package query builds and validates the request criteria sent to the
// backend's search and ask endpoints.
package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyQuery is returned when the query text is blank after trimming.
// Callers reject the request before anything is sent to the backend.
var ErrEmptyQuery = errors.New("query text is required")

// Criteria describes one search or ask request. Build a fresh value per
// user action; a Criteria is never mutated after construction.
type Criteria struct {
	// QueryText is the search text or question. Required.
	QueryText string

	// FeedName and FeedAuthor narrow results to one feed.
	FeedName   string
	FeedAuthor string

	// TitleKeywords further filters article titles. Search only.
	TitleKeywords string

	// Limit caps the number of articles considered. Must be positive.
	Limit int

	// Provider and Model select the LLM backend. Ask only. An empty
	// Model requests the backend's automatic model routing.
	Provider string
	Model    string
}

// Validate rejects criteria that must never reach the backend.
func (c Criteria) Validate() error {
	if strings.TrimSpace(c.QueryText) == "" {
		return ErrEmptyQuery
	}
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be positive, got %d", c.Limit)
	}
	return nil
}

// Payload is the JSON request body understood by the backend.
type Payload struct {
	QueryText     string `json:"query_text"`
	FeedAuthor    string `json:"feed_author"`
	FeedName      string `json:"feed_name"`
	Limit         int    `json:"limit"`
	TitleKeywords string `json:"title_keywords,omitempty"`
	Provider      string `json:"provider,omitempty"`
	Model         string `json:"model,omitempty"`
}

// Payload normalizes the criteria into the backend's wire form: query text
// and title keywords are trimmed and lowercased, the provider is lowercased,
// and the model is omitted entirely when automatic routing is requested.
func (c Criteria) Payload() Payload {
	return Payload{
		QueryText:     strings.ToLower(strings.TrimSpace(c.QueryText)),
		FeedAuthor:    strings.TrimSpace(c.FeedAuthor),
		FeedName:      strings.TrimSpace(c.FeedName),
		Limit:         c.Limit,
		TitleKeywords: strings.ToLower(strings.TrimSpace(c.TitleKeywords)),
		Provider:      strings.ToLower(strings.TrimSpace(c.Provider)),
		Model:         strings.TrimSpace(c.Model),
	}
}
