package web

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/inkwellhq/inkwell/pkg/history"
	"github.com/inkwellhq/inkwell/pkg/models"
	"github.com/inkwellhq/inkwell/pkg/query"
	"github.com/inkwellhq/inkwell/pkg/render"
	"github.com/inkwellhq/inkwell/pkg/sse"
	"github.com/inkwellhq/inkwell/pkg/stream"
)

const emptyQueryMessage = "Please enter a query text."

// askRequest is the JSON body shared by the search and ask endpoints.
type askRequest struct {
	QueryText     string `json:"query_text"`
	FeedName      string `json:"feed_name"`
	FeedAuthor    string `json:"feed_author"`
	TitleKeywords string `json:"title_keywords"`
	Limit         int    `json:"limit"`
	Provider      string `json:"provider"`
	Model         string `json:"model"`
}

// criteria maps the request to backend search criteria. The UI sends the
// automatic-routing sentinel as the model name; the backend expects it
// omitted instead.
func (r askRequest) criteria() query.Criteria {
	limit := r.Limit
	if limit <= 0 {
		limit = 5
	}
	return query.Criteria{
		QueryText:     r.QueryText,
		FeedName:      r.FeedName,
		FeedAuthor:    r.FeedAuthor,
		TitleKeywords: r.TitleKeywords,
		Limit:         limit,
		Provider:      r.Provider,
		Model:         models.Normalize(r.Model),
	}
}

type htmlResponse struct {
	HTML string `json:"html"`
}

type askResponse struct {
	AnswerHTML string `json:"answer_html"`
	ModelInfo  string `json:"model_info"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleIndex serves the single-page UI.
func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Type("html")
	return c.Send(indexHTML)
}

// handleFeeds returns the feed registry for populating the filter dropdowns.
func (s *Server) handleFeeds(c *fiber.Ctx) error {
	reg := s.feeds.Load()
	return c.JSON(fiber.Map{
		"feeds":   reg.Feeds(),
		"names":   reg.Names(),
		"authors": reg.Authors(),
	})
}

// handleModels returns the providers, or the model choices for a provider
// when the "provider" query parameter is set.
func (s *Server) handleModels(c *fiber.Ctx) error {
	provider := c.Query("provider")
	if provider == "" {
		return c.JSON(fiber.Map{"providers": s.models.Providers()})
	}
	return c.JSON(fiber.Map{
		"provider": provider,
		"models":   s.models.ModelsFor(provider),
	})
}

// handleSearch runs a title search and returns the rendered results table.
func (s *Server) handleSearch(c *fiber.Ctx) error {
	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}

	if strings.TrimSpace(req.QueryText) == "" {
		return c.JSON(htmlResponse{HTML: emptyQueryMessage})
	}

	articles, err := s.client.SearchTitles(c.Context(), req.criteria())
	if err != nil {
		s.logger.Error("search failed", "error", err)
		return c.JSON(htmlResponse{HTML: render.ErrorNotice("Error: " + err.Error())})
	}

	html, err := render.ResultsTable(articles)
	if err != nil {
		s.logger.Error("failed to render results", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "failed to render results"})
	}

	return c.JSON(htmlResponse{HTML: html})
}

// handleAsk answers a question without streaming.
func (s *Server) handleAsk(c *fiber.Ctx) error {
	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}

	if strings.TrimSpace(req.QueryText) == "" {
		return c.JSON(askResponse{AnswerHTML: emptyQueryMessage})
	}

	completion, err := s.client.Ask(c.Context(), req.criteria())
	if err != nil {
		s.logger.Error("ask failed", "error", err)
		return c.JSON(askResponse{
			AnswerHTML: render.ErrorNotice("Request failed: " + err.Error()),
			ModelInfo:  render.ModelBadge(req.Provider, ""),
		})
	}

	var (
		answerHTML string
		model      string
		outcome    = history.OutcomeAnswered
	)
	for _, ev := range stream.DecodeCompletion(*completion) {
		switch ev.Type {
		case stream.TypeModel:
			model = ev.Model
		case stream.TypeText:
			html, rerr := render.Answer(ev.Text)
			if rerr != nil {
				s.logger.Error("failed to render answer", "error", rerr)
				return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{Error: "failed to render answer"})
			}
			answerHTML = html
		case stream.TypeTruncated:
			outcome = history.OutcomeTruncated
			answerHTML += render.TruncationNotice(ev.Message)
		}
	}

	s.record(req, completion.Answer, model, outcome)

	return c.JSON(askResponse{
		AnswerHTML: answerHTML,
		ModelInfo:  render.ModelBadge(req.Provider, model),
	})
}

// handleAskStream answers a question with streaming, relayed to the browser
// as named SSE events: model, text, truncated, error, done.
func (s *Server) handleAskStream(c *fiber.Ctx) error {
	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResponse{Error: "invalid request body"})
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	// io.Pipe + SetBodyStream gives per-chunk streaming with backpressure:
	// pw.Write blocks until fasthttp's chunked writer has flushed the bytes
	// to the socket.
	pr, pw := io.Pipe()
	go s.relayAnswer(pw, req)

	c.Context().Response.SetBodyStream(pr, -1)

	return nil
}

type modelPayload struct {
	Model string `json:"model"`
}

type textPayload struct {
	// Content is the cumulative answer markdown so far.
	Content string `json:"content"`
	// HTML is the rendered form of Content, ready to swap into the page.
	HTML string `json:"html"`
}

type noticePayload struct {
	Message string `json:"message"`
}

// relayAnswer streams the backend answer to the pipe as SSE events.
// Runs in its own goroutine; uses context.Background() because fasthttp
// recycles its RequestCtx once the handler returns.
func (s *Server) relayAnswer(pw *io.PipeWriter, req askRequest) {
	defer pw.Close()

	w := sse.NewWriter(pw)

	if strings.TrimSpace(req.QueryText) == "" {
		_ = w.SendEvent("text", textPayload{Content: emptyQueryMessage, HTML: emptyQueryMessage})
		_ = w.SendEvent("done", struct{}{})
		return
	}

	answer := s.client.AskStream(context.Background(), req.criteria())
	defer answer.Close()

	var (
		model   string
		outcome = history.OutcomeAnswered
	)
	for {
		ev := answer.Next()
		if ev == nil {
			break
		}

		var werr error
		switch ev.Type {
		case stream.TypeModel:
			model = ev.Model
			werr = w.SendEvent("model", modelPayload{Model: ev.Model})
		case stream.TypeText:
			html, rerr := render.Answer(ev.Text)
			if rerr != nil {
				s.logger.Error("failed to render answer delta", "error", rerr)
				html = ""
			}
			werr = w.SendEvent("text", textPayload{Content: ev.Text, HTML: html})
		case stream.TypeTruncated:
			outcome = history.OutcomeTruncated
			werr = w.SendEvent("truncated", noticePayload{Message: ev.Message})
		case stream.TypeError:
			outcome = history.OutcomeError
			werr = w.SendEvent("error", noticePayload{Message: ev.Message})
		}

		// The browser went away; stop relaying.
		if werr != nil && errors.Is(werr, io.ErrClosedPipe) {
			return
		}
	}

	_ = w.SendEvent("done", struct{}{})

	s.record(req, answer.Text(), model, outcome)
}

// record stores an answered question in the history store, if one is
// configured.
func (s *Server) record(req askRequest, answer, model string, outcome history.Outcome) {
	if s.history == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.history.Record(ctx, history.Entry{
		Question: req.QueryText,
		Answer:   answer,
		Provider: req.Provider,
		Model:    model,
		Outcome:  outcome,
	})
	if err != nil {
		s.logger.Error("failed to record ask history", "error", err)
	}
}
