// Package initcmder provides the init command for initializing a local
// .inkwell directory in the current working directory.
package initcmder

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const (
	dirName = ".inkwell"
)

const starterFeedsYAML = `# Newsletters the backend indexes. The web UI filter dropdowns are
# populated from this file.
feeds:
  - name: Example Newsletter
    author: Jane Writer
    url: https://example.substack.com/feed
`

const starterModelsYAML = `# LLM providers and the models available from each. Every provider also
# offers automatic model selection, where the backend routes the question
# itself.
providers:
  openrouter:
    primary_model: openai/gpt-4o-mini
    candidate_models:
      - meta-llama/llama-3.1-70b-instruct
      - mistralai/mistral-small
`

const starterConfigTOML = `version = 0

[backend]
target = "http://localhost:8080"

[web]
listen = ":7860"

[ask]
provider = "openrouter"
limit = 5
stream = true
`

const initLongDesc string = `Initialize a new .inkwell/ directory in the current working directory.

Creates a local .inkwell/ directory that takes precedence over the default
~/.inkwell/ directory, with starter config.toml, feeds.yaml, and models.yaml
files. Existing files are left untouched.

This is useful for maintaining separate inkwell state per project or
directory.

Examples:
  inkwell init`

const initShortDesc string = "Initialize a local .inkwell/ directory"

func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: initShortDesc,
		Long:  initLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit()
		},
	}

	return cmd
}

func runInit() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	info, err := os.Stat(dir)
	alreadyExists := err == nil && info.IsDir()

	if !alreadyExists {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating .inkwell directory: %w", err)
		}
	}

	starters := map[string]string{
		"config.toml": starterConfigTOML,
		"feeds.yaml":  starterFeedsYAML,
		"models.yaml": starterModelsYAML,
	}
	for name, content := range starters {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Keeping existing %s\n", name)
			continue
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
		fmt.Printf("Created %s\n", name)
	}

	if alreadyExists {
		fmt.Printf("Already initialized: %s\n", dir)
	} else {
		fmt.Printf("Initialized .inkwell directory: %s\n", dir)
	}
	return nil
}
