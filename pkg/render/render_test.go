package render_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/inkwellhq/inkwell/pkg/client"
	"github.com/inkwellhq/inkwell/pkg/render"
)

var _ = Describe("Answer", func() {
	It("converts markdown to HTML inside the answer container", func() {
		out, err := render.Answer("**bold** and *italic*")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HavePrefix("<div class='answer'><div class='markdown-body'>"))
		Expect(out).To(HaveSuffix("</div></div>"))
		Expect(out).To(ContainSubstring("<strong>bold</strong>"))
		Expect(out).To(ContainSubstring("<em>italic</em>"))
	})

	It("renders markdown tables", func() {
		out, err := render.Answer("| a | b |\n|---|---|\n| 1 | 2 |")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("<table>"))
		Expect(out).To(ContainSubstring("<td>1</td>"))
	})

	It("renders an empty answer without error", func() {
		out, err := render.Answer("")
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("markdown-body"))
	})
})

var _ = Describe("ModelBadge", func() {
	It("shows only the provider before the model is known", func() {
		Expect(render.ModelBadge("openrouter", "")).To(
			Equal("<span class='model-badge'>Provider: openrouter</span>"))
	})

	It("shows provider and model once reported", func() {
		Expect(render.ModelBadge("openrouter", "gpt-4o-mini")).To(
			Equal("<span class='model-badge'>Provider: openrouter | Model: gpt-4o-mini</span>"))
	})

	It("escapes markup in the model name", func() {
		out := render.ModelBadge("p", "<script>")
		Expect(out).NotTo(ContainSubstring("<script>"))
		Expect(out).To(ContainSubstring("&lt;script&gt;"))
	})
})

var _ = Describe("notices", func() {
	It("renders the truncation warning", func() {
		out := render.TruncationNotice("AI response truncated due to token limit.")
		Expect(out).To(ContainSubstring("⚠️ AI response truncated due to token limit."))
		Expect(out).To(ContainSubstring("class='notice'"))
	})

	It("renders and escapes error messages", func() {
		out := render.ErrorNotice("Request failed: dial tcp <nil>")
		Expect(out).To(ContainSubstring("class='error'"))
		Expect(out).To(ContainSubstring("&lt;nil&gt;"))
	})
})

var _ = Describe("ResultsTable", func() {
	It("returns the no-results sentinel for an empty set", func() {
		out, err := render.ResultsTable(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(Equal("No results found."))
	})

	It("renders one row per article", func() {
		out, err := render.ResultsTable([]client.Article{
			{
				Title:         "Attention Is All You Need",
				FeedName:      "ML Weekly",
				FeedAuthor:    "Ada",
				ArticleAuthor: []string{"Vaswani", "Shazeer"},
				URL:           "https://example.com/attention",
			},
			{Title: "Untitled follow-up"},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(ContainSubstring("<td>Attention Is All You Need</td>"))
		Expect(out).To(ContainSubstring("<td>Vaswani, Shazeer</td>"))
		Expect(out).To(ContainSubstring(`href="https://example.com/attention"`))

		// Missing fields fall back to N/A and a dead link.
		Expect(out).To(ContainSubstring("<td>N/A</td>"))
		Expect(out).To(ContainSubstring(`href="#"`))
	})

	It("escapes markup in article fields", func() {
		out, err := render.ResultsTable([]client.Article{
			{Title: "<img src=x onerror=alert(1)>", URL: "https://ok.example"},
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).NotTo(ContainSubstring("<img"))
	})
})
