package models_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/inkwellhq/inkwell/pkg/models"
)

const registryYAML = `providers:
  OpenRouter:
    primary_model: openrouter/auto
    candidate_models:
      - meta-llama/llama-3.3-70b
      - mistralai/mistral-small
  openai:
    primary_model: gpt-4o-mini
    candidate_models:
      - gpt-4o
`

var _ = Describe("Registry", func() {
	var registry *models.Registry

	BeforeEach(func() {
		var err error
		registry, err = models.Parse([]byte(registryYAML))
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Providers", func() {
		It("returns lowercase provider names, sorted", func() {
			Expect(registry.Providers()).To(Equal([]string{"openai", "openrouter"}))
		})
	})

	Describe("ModelsFor", func() {
		It("offers automatic routing first, then primary, then candidates", func() {
			Expect(registry.ModelsFor("openrouter")).To(Equal([]string{
				models.AutoSelection,
				"openrouter/auto",
				"meta-llama/llama-3.3-70b",
				"mistralai/mistral-small",
			}))
		})

		It("is case-insensitive on provider name", func() {
			Expect(registry.ModelsFor("OpenAI")).To(ContainElement("gpt-4o-mini"))
		})

		It("offers only automatic routing for an unknown provider", func() {
			Expect(registry.ModelsFor("nope")).To(Equal([]string{models.AutoSelection}))
		})
	})

	Describe("Parse", func() {
		It("rejects an empty registry", func() {
			_, err := models.Parse([]byte("providers: {}"))
			Expect(err).To(MatchError(ContainSubstring("no providers")))
		})
	})
})

var _ = Describe("Normalize", func() {
	It("maps the automatic selection sentinel to empty", func() {
		Expect(models.Normalize(models.AutoSelection)).To(BeEmpty())
	})

	It("passes concrete model names through", func() {
		Expect(models.Normalize("gpt-4o")).To(Equal("gpt-4o"))
	})
})
