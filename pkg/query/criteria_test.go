package query_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/inkwellhq/inkwell/pkg/query"
)

var _ = Describe("Criteria", func() {
	Describe("Validate", func() {
		It("accepts a well-formed criteria", func() {
			c := query.Criteria{QueryText: "rust async", Limit: 5}
			Expect(c.Validate()).To(Succeed())
		})

		It("rejects a blank query", func() {
			c := query.Criteria{QueryText: "", Limit: 5}
			Expect(c.Validate()).To(MatchError(query.ErrEmptyQuery))
		})

		It("rejects a whitespace-only query", func() {
			c := query.Criteria{QueryText: "   \t ", Limit: 5}
			Expect(c.Validate()).To(MatchError(query.ErrEmptyQuery))
		})

		It("rejects a non-positive limit", func() {
			c := query.Criteria{QueryText: "q", Limit: 0}
			Expect(c.Validate()).To(HaveOccurred())
		})
	})

	Describe("Payload", func() {
		It("normalizes query text and title keywords", func() {
			c := query.Criteria{
				QueryText:     "  What Is WASM? ",
				TitleKeywords: " WebAssembly ",
				Limit:         3,
			}

			p := c.Payload()
			Expect(p.QueryText).To(Equal("what is wasm?"))
			Expect(p.TitleKeywords).To(Equal("webassembly"))
			Expect(p.Limit).To(Equal(3))
		})

		It("lowercases the provider", func() {
			c := query.Criteria{QueryText: "q", Limit: 1, Provider: "OpenRouter"}
			Expect(c.Payload().Provider).To(Equal("openrouter"))
		})

		It("omits optional fields from the JSON body when unset", func() {
			c := query.Criteria{QueryText: "q", Limit: 1}

			body, err := json.Marshal(c.Payload())
			Expect(err).NotTo(HaveOccurred())

			var keys map[string]any
			Expect(json.Unmarshal(body, &keys)).To(Succeed())
			Expect(keys).To(HaveKey("query_text"))
			Expect(keys).To(HaveKey("feed_author"))
			Expect(keys).To(HaveKey("feed_name"))
			Expect(keys).To(HaveKey("limit"))
			Expect(keys).NotTo(HaveKey("title_keywords"))
			Expect(keys).NotTo(HaveKey("provider"))
			Expect(keys).NotTo(HaveKey("model"))
		})

		It("keeps the model name verbatim apart from trimming", func() {
			c := query.Criteria{QueryText: "q", Limit: 1, Model: " GPT-4o "}
			Expect(c.Payload().Model).To(Equal("GPT-4o"))
		})
	})
})
