package feeds_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/inkwellhq/inkwell/pkg/feeds"
)

const registryYAML = `feeds:
  - name: Pragmatic Engineer
    author: Gergely Orosz
    url: https://newsletter.pragmaticengineer.com/feed
  - name: Go Weekly
    author: Peter Cooper
`

var _ = Describe("Registry", func() {
	Describe("Parse", func() {
		It("parses feeds in file order", func() {
			r, err := feeds.Parse([]byte(registryYAML))
			Expect(err).NotTo(HaveOccurred())

			Expect(r.Feeds()).To(HaveLen(2))
			Expect(r.Names()).To(Equal([]string{"Pragmatic Engineer", "Go Weekly"}))
			Expect(r.Authors()).To(Equal([]string{"Gergely Orosz", "Peter Cooper"}))
			Expect(r.Feeds()[0].URL).To(ContainSubstring("pragmaticengineer"))
		})

		It("rejects an empty registry", func() {
			_, err := feeds.Parse([]byte("feeds: []"))
			Expect(err).To(MatchError(ContainSubstring("no feeds")))
		})

		It("rejects a feed without a name", func() {
			_, err := feeds.Parse([]byte("feeds:\n  - author: Somebody\n"))
			Expect(err).To(MatchError(ContainSubstring("no name")))
		})

		It("rejects malformed YAML", func() {
			_, err := feeds.Parse([]byte("feeds: [unclosed"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Load", func() {
		It("loads a registry from disk", func() {
			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "feeds.yaml")
			Expect(os.WriteFile(path, []byte(registryYAML), 0o644)).To(Succeed())

			r, err := feeds.Load(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Feeds()).To(HaveLen(2))
		})

		It("fails loudly when the registry file is missing", func() {
			_, err := feeds.Load(filepath.Join(GinkgoT().TempDir(), "missing.yaml"))
			Expect(err).To(HaveOccurred())
		})
	})
})
