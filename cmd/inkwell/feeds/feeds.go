// Package feedscmder provides the feeds command for inspecting the feed
// registry.
package feedscmder

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/inkwellhq/inkwell/pkg/cliui"
	"github.com/inkwellhq/inkwell/pkg/config"
	"github.com/inkwellhq/inkwell/pkg/dotdir"
	"github.com/inkwellhq/inkwell/pkg/feeds"
)

type feedsCommander struct {
	feedsPath string
	asJSON    bool
}

const feedsLongDesc string = `List the newsletters in the feed registry.

The registry is a YAML file (feeds.yaml in the .inkwell/ directory by
default) describing the newsletters the backend indexes. The web UI and the
search filters are populated from it.

Example:
  inkwell feeds
  inkwell feeds --json
  inkwell feeds --feeds /etc/inkwell/feeds.yaml`

const feedsShortDesc string = "List the feed registry"

func NewFeedsCmd() *cobra.Command {
	cmder := &feedsCommander{}

	cmd := &cobra.Command{
		Use:   "feeds",
		Short: feedsShortDesc,
		Long:  feedsLongDesc,
		Args:  cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("feeds") {
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
				return fmt.Errorf("no .inkwell/ directory found; run 'inkwell init' or pass --feeds")
			}
			cmder.feedsPath = cfg.FeedsPath(target)

			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmder.run()
		},
	}

	config.AddStringFlag(cmd, config.Flags, config.FlagFeedsPath, &cmder.feedsPath)
	cmd.Flags().BoolVar(&cmder.asJSON, "json", false, "Output raw JSON (for piping)")

	return cmd
}

func (c *feedsCommander) run() error {
	reg, err := feeds.Load(c.feedsPath)
	if err != nil {
		return fmt.Errorf("loading feed registry: %w", err)
	}

	if c.asJSON {
		return json.NewEncoder(os.Stdout).Encode(reg.Feeds())
	}

	fmt.Printf("\n  %s %s\n\n",
		cliui.KeyStyle.Render("Feed registry:"),
		cliui.DimStyle.Render(c.feedsPath),
	)
	for _, f := range reg.Feeds() {
		fmt.Printf("  %s %s\n", cliui.Title(f.Name), cliui.Faint("by "+f.Author))
		if f.URL != "" {
			fmt.Printf("    %s\n", cliui.DimStyle.Render(f.URL))
		}
	}
	fmt.Println()

	return nil
}
