// Package render turns search results and AI answers into HTML fragments
// for the web UI. Answers arrive as markdown and are converted with
// goldmark; everything user- or backend-controlled is escaped before it
// reaches the page.
package render

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/inkwellhq/inkwell/pkg/client"
)

// md converts answer markdown to HTML. Tables are enabled because models
// frequently answer comparison questions with a markdown table.
var md = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.Strikethrough),
)

// Answer renders answer markdown inside the standard answer container.
func Answer(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering answer markdown: %w", err)
	}
	return "<div class='answer'><div class='markdown-body'>" + buf.String() + "</div></div>", nil
}

// ModelBadge renders the provider/model attribution line. The model part is
// omitted while the backend has not yet reported which model answered.
func ModelBadge(provider, model string) string {
	if model == "" {
		return fmt.Sprintf("<span class='model-badge'>Provider: %s</span>", html.EscapeString(provider))
	}
	return fmt.Sprintf("<span class='model-badge'>Provider: %s | Model: %s</span>",
		html.EscapeString(provider), html.EscapeString(model))
}

// TruncationNotice renders the token-limit warning appended after a
// truncated answer.
func TruncationNotice(msg string) string {
	return "<div class='answer'><div class='notice'>⚠️ " + html.EscapeString(msg) + "</div></div>"
}

// ErrorNotice renders a backend failure message.
func ErrorNotice(msg string) string {
	return "<div class='error'>❌ " + html.EscapeString(msg) + "</div>"
}

var resultsTmpl = template.Must(template.New("results").Parse(`<div class='section'>
  <div class='header'><h2>Results</h2><span class='subtle'>Unique titles</span></div>
  <table class='results-table'>
    <thead>
      <tr><th>Title</th><th>Newsletter</th><th>Feed Author</th><th>Article Authors</th><th>Link</th></tr>
    </thead>
    <tbody>
{{- range .}}
      <tr><td>{{.Title}}</td><td>{{.FeedName}}</td><td>{{.FeedAuthor}}</td><td>{{.Authors}}</td><td><a href="{{.URL}}" target="_blank" rel="noopener noreferrer">Open</a></td></tr>
{{- end}}
    </tbody>
  </table>
</div>
`))

type resultRow struct {
	Title      string
	FeedName   string
	FeedAuthor string
	Authors    string
	URL        string
}

// ResultsTable renders search results as a compact table. Returns the
// "No results found." sentinel when the result set is empty so the web
// layer never shows an empty table shell.
func ResultsTable(articles []client.Article) (string, error) {
	if len(articles) == 0 {
		return "No results found.", nil
	}

	rows := make([]resultRow, 0, len(articles))
	for _, a := range articles {
		row := resultRow{
			Title:      orNA(a.Title),
			FeedName:   orNA(a.FeedName),
			FeedAuthor: orNA(a.FeedAuthor),
			Authors:    orNA(strings.Join(a.ArticleAuthor, ", ")),
			URL:        a.URL,
		}
		if row.URL == "" {
			row.URL = "#"
		}
		rows = append(rows, row)
	}

	var buf bytes.Buffer
	if err := resultsTmpl.Execute(&buf, rows); err != nil {
		return "", fmt.Errorf("rendering results table: %w", err)
	}
	return buf.String(), nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
