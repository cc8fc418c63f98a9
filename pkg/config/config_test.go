package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/inkwellhq/inkwell/pkg/config"
)

var _ = Describe("Configer", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	Describe("LoadConfig", func() {
		It("returns defaults when no config file exists", func() {
			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Backend.Target).To(Equal("http://localhost:8080"))
			Expect(cfg.Web.Listen).To(Equal(":7860"))
			Expect(cfg.Ask.Provider).To(Equal("openrouter"))
			Expect(cfg.Ask.Model).To(BeEmpty())
			Expect(cfg.Ask.Limit).To(Equal(5))
			Expect(cfg.Ask.Stream).To(BeTrue())
		})

		It("overrides defaults with values from the file", func() {
			content := `
[backend]
target = "https://search.example.com"

[ask]
provider = "anthropic"
limit = 12
`
			path := filepath.Join(dir, "config.toml")
			Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())

			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Backend.Target).To(Equal("https://search.example.com"))
			Expect(cfg.Ask.Provider).To(Equal("anthropic"))
			Expect(cfg.Ask.Limit).To(Equal(12))

			// Fields the file omits keep their defaults.
			Expect(cfg.Web.Listen).To(Equal(":7860"))
			Expect(cfg.Ask.Stream).To(BeTrue())
		})

		It("keeps stream=false when the file sets it explicitly", func() {
			content := `
[ask]
stream = false
`
			path := filepath.Join(dir, "config.toml")
			Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())

			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Ask.Stream).To(BeFalse())
		})

		It("rejects an unsupported config version", func() {
			content := `version = 99`
			path := filepath.Join(dir, "config.toml")
			Expect(os.WriteFile(path, []byte(content), 0o600)).To(Succeed())

			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			_, err = cfger.LoadConfig()
			Expect(err).To(MatchError(ContainSubstring("unsupported config version")))
		})

		It("rejects malformed TOML", func() {
			path := filepath.Join(dir, "config.toml")
			Expect(os.WriteFile(path, []byte("[backend\ntarget ="), 0o600)).To(Succeed())

			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			_, err = cfger.LoadConfig()
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("SaveConfig", func() {
		It("round-trips the config through disk", func() {
			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			cfg := config.NewDefaultConfig()
			cfg.Backend.Target = "http://backend.internal:9000"
			cfg.Ask.Model = "claude-sonnet-4"
			Expect(cfger.SaveConfig(cfg)).To(Succeed())

			loaded, err := cfger.LoadConfig()
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Backend.Target).To(Equal("http://backend.internal:9000"))
			Expect(loaded.Ask.Model).To(Equal("claude-sonnet-4"))
		})

		It("errors on a nil config", func() {
			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())
			Expect(cfger.SaveConfig(nil)).To(MatchError(ContainSubstring("nil config")))
		})
	})

	Describe("SetConfigValue and GetConfigValue", func() {
		It("sets and gets string keys", func() {
			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfger.SetConfigValue("ask.provider", "groq")).To(Succeed())

			got, err := cfger.GetConfigValue("ask.provider")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal("groq"))
		})

		It("validates integer keys", func() {
			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfger.SetConfigValue("ask.limit", "25")).To(Succeed())
			got, err := cfger.GetConfigValue("ask.limit")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal("25"))

			Expect(cfger.SetConfigValue("ask.limit", "zero")).NotTo(Succeed())
			Expect(cfger.SetConfigValue("ask.limit", "-3")).NotTo(Succeed())
		})

		It("parses boolean keys", func() {
			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfger.SetConfigValue("ask.stream", "false")).To(Succeed())
			got, err := cfger.GetConfigValue("ask.stream")
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal("false"))

			Expect(cfger.SetConfigValue("ask.stream", "maybe")).NotTo(Succeed())
		})

		It("rejects unknown keys", func() {
			cfger, err := config.NewConfiger(dir)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfger.SetConfigValue("nope.nothing", "x")).To(MatchError(ContainSubstring("unknown config key")))
			_, err = cfger.GetConfigValue("nope.nothing")
			Expect(err).To(MatchError(ContainSubstring("unknown config key")))
		})
	})

	Describe("ValidConfigKeys", func() {
		It("lists every supported key exactly once", func() {
			keys := config.ValidConfigKeys()
			Expect(keys).To(ContainElements(
				"backend.target",
				"web.listen",
				"ask.provider",
				"ask.model",
				"ask.limit",
				"ask.stream",
				"registry.feeds_path",
				"registry.models_path",
				"storage.sqlite_path",
			))

			seen := map[string]int{}
			for _, k := range keys {
				seen[k]++
				Expect(config.IsValidConfigKey(k)).To(BeTrue())
			}
			for k, n := range seen {
				Expect(n).To(Equal(1), "key %q appears more than once", k)
			}
		})
	})

	Describe("path resolution", func() {
		It("resolves registry and storage paths against the dot directory", func() {
			cfg := config.NewDefaultConfig()
			Expect(cfg.FeedsPath("/home/u/.inkwell")).To(Equal(filepath.Join("/home/u/.inkwell", "feeds.yaml")))
			Expect(cfg.ModelsPath("/home/u/.inkwell")).To(Equal(filepath.Join("/home/u/.inkwell", "models.yaml")))
			Expect(cfg.HistoryPath("/home/u/.inkwell")).To(Equal(filepath.Join("/home/u/.inkwell", "history.db")))
		})

		It("prefers explicitly configured paths", func() {
			cfg := config.NewDefaultConfig()
			cfg.Registry.FeedsPath = "/etc/inkwell/feeds.yaml"
			cfg.Storage.SQLitePath = "/var/lib/inkwell/history.db"
			Expect(cfg.FeedsPath("/home/u/.inkwell")).To(Equal("/etc/inkwell/feeds.yaml"))
			Expect(cfg.HistoryPath("/home/u/.inkwell")).To(Equal("/var/lib/inkwell/history.db"))
		})
	})
})
