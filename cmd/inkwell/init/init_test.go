package initcmder_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	initcmder "github.com/inkwellhq/inkwell/cmd/inkwell/init"
	"github.com/inkwellhq/inkwell/pkg/config"
	"github.com/inkwellhq/inkwell/pkg/feeds"
	"github.com/inkwellhq/inkwell/pkg/models"
)

var _ = Describe("init command", func() {
	var (
		tmpDir  string
		origDir string
	)

	BeforeEach(func() {
		var err error
		tmpDir, err = os.MkdirTemp("", "inkwell-init-test-*")
		Expect(err).NotTo(HaveOccurred())

		origDir, err = os.Getwd()
		Expect(err).NotTo(HaveOccurred())

		err = os.Chdir(tmpDir)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		err := os.Chdir(origDir)
		Expect(err).NotTo(HaveOccurred())
		os.RemoveAll(tmpDir)
	})

	It("creates the .inkwell directory with starter files", func() {
		cmd := initcmder.NewInitCmd()
		Expect(cmd.Execute()).To(Succeed())

		dir := filepath.Join(tmpDir, ".inkwell")
		for _, name := range []string{"config.toml", "feeds.yaml", "models.yaml"} {
			_, err := os.Stat(filepath.Join(dir, name))
			Expect(err).NotTo(HaveOccurred(), "expected %s to exist", name)
		}
	})

	It("writes starter files that the registries can parse", func() {
		cmd := initcmder.NewInitCmd()
		Expect(cmd.Execute()).To(Succeed())

		dir := filepath.Join(tmpDir, ".inkwell")

		feedReg, err := feeds.Load(filepath.Join(dir, "feeds.yaml"))
		Expect(err).NotTo(HaveOccurred())
		Expect(feedReg.Feeds()).NotTo(BeEmpty())

		modelReg, err := models.Load(filepath.Join(dir, "models.yaml"))
		Expect(err).NotTo(HaveOccurred())
		Expect(modelReg.Providers()).To(ContainElement("openrouter"))

		data, err := os.ReadFile(filepath.Join(dir, "config.toml"))
		Expect(err).NotTo(HaveOccurred())
		cfg, err := config.ParseConfigTOML(data)
		Expect(err).NotTo(HaveOccurred())
		Expect(cfg.Backend.Target).To(Equal("http://localhost:8080"))
	})

	It("keeps existing files on re-run", func() {
		cmd := initcmder.NewInitCmd()
		Expect(cmd.Execute()).To(Succeed())

		custom := []byte("feeds:\n  - name: Mine\n    author: Me\n    url: https://mine.example/rss\n")
		feedsPath := filepath.Join(tmpDir, ".inkwell", "feeds.yaml")
		Expect(os.WriteFile(feedsPath, custom, 0o644)).To(Succeed())

		again := initcmder.NewInitCmd()
		Expect(again.Execute()).To(Succeed())

		data, err := os.ReadFile(feedsPath)
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal(custom))
	})

	It("rejects arguments", func() {
		cmd := initcmder.NewInitCmd()
		cmd.SetArgs([]string{"extra"})
		Expect(cmd.Execute()).NotTo(Succeed())
	})
})
