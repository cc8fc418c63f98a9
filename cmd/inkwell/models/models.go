// Package modelscmder provides the models command for inspecting the model
// registry.
package modelscmder

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkwellhq/inkwell/pkg/cliui"
	"github.com/inkwellhq/inkwell/pkg/config"
	"github.com/inkwellhq/inkwell/pkg/dotdir"
	"github.com/inkwellhq/inkwell/pkg/models"
)

type modelsCommander struct {
	modelsPath string
	provider   string
	asJSON     bool
}

const modelsLongDesc string = `List the LLM providers and models in the model registry.

The registry is a YAML file (models.yaml in the .inkwell/ directory by
default) mapping providers to the models the backend can route questions to.
Each provider also offers automatic model selection, where the backend picks
the model itself.

Example:
  inkwell models
  inkwell models --provider openrouter
  inkwell models --json`

const modelsShortDesc string = "List the model registry"

func NewModelsCmd() *cobra.Command {
	cmder := &modelsCommander{}

	cmd := &cobra.Command{
		Use:   "models",
		Short: modelsShortDesc,
		Long:  modelsLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("models") {
				return nil
			}

			configDir, _ := cmd.Flags().GetString("config-dir")
			cfger, err := config.NewConfiger(configDir)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg, err := cfger.LoadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			ddm := dotdir.NewManager()
			target, err := ddm.Target(configDir)
			if err != nil {
				return fmt.Errorf("resolving config directory: %w", err)
			}
			if target == "" {
				return fmt.Errorf("no .inkwell/ directory found; run 'inkwell init' or pass --models")
			}
			cmder.modelsPath = cfg.ModelsPath(target)

			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagModelsPath, &cmder.modelsPath)
	cmd.Flags().StringVarP(&cmder.provider, "provider", "p", "", "Show models for this provider only")
	cmd.Flags().BoolVar(&cmder.asJSON, "json", false, "Output raw JSON (for piping)")

	return cmd
}

func (c *modelsCommander) run() error {
	reg, err := models.Load(c.modelsPath)
	if err != nil {
		return fmt.Errorf("loading model registry: %w", err)
	}

	if c.provider != "" {
		choices := reg.ModelsFor(c.provider)
		if c.asJSON {
			return json.NewEncoder(os.Stdout).Encode(choices)
		}
		fmt.Printf("\n  %s\n\n", cliui.KeyStyle.Render(c.provider))
		for _, m := range choices {
			fmt.Printf("    %s\n", cliui.ValueStyle.Render(m))
		}
		fmt.Println()
		return nil
	}

	if c.asJSON {
		out := make(map[string][]string)
		for _, p := range reg.Providers() {
			out[p] = reg.ModelsFor(p)
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	fmt.Printf("\n  %s %s\n\n",
		cliui.KeyStyle.Render("Model registry:"),
		cliui.DimStyle.Render(c.modelsPath),
	)
	for _, p := range reg.Providers() {
		fmt.Printf("  %s\n", cliui.Title(p))
		for _, m := range reg.ModelsFor(p) {
			fmt.Printf("    %s\n", cliui.ValueStyle.Render(m))
		}
		fmt.Println()
	}

	return nil
}
