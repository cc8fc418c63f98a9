// Package inkwellcmder
package inkwellcmder

import (
	"github.com/spf13/cobra"

	askcmder "github.com/inkwellhq/inkwell/cmd/inkwell/ask"
	configcmder "github.com/inkwellhq/inkwell/cmd/inkwell/config"
	feedscmder "github.com/inkwellhq/inkwell/cmd/inkwell/feeds"
	historycmder "github.com/inkwellhq/inkwell/cmd/inkwell/history"
	initcmder "github.com/inkwellhq/inkwell/cmd/inkwell/init"
	modelscmder "github.com/inkwellhq/inkwell/cmd/inkwell/models"
	searchcmder "github.com/inkwellhq/inkwell/cmd/inkwell/search"
	servecmder "github.com/inkwellhq/inkwell/cmd/inkwell/serve"
	versioncmder "github.com/inkwellhq/inkwell/cmd/inkwell/version"
)

const inkwellLongDesc string = `Inkwell searches AI newsletters and asks an AI assistant about them.

Common commands:
  inkwell search <query>   Search article titles
  inkwell ask <question>   Ask a question grounded in the articles
  inkwell serve            Run the browser UI`

const inkwellShortDesc string = "Inkwell - Article Search and Ask AI"

func NewInkwellCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inkwell",
		Short: inkwellShortDesc,
		Long:  inkwellLongDesc,
	}

	// Global flags
	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Directory holding config.toml (default: ./.inkwell then ~/.inkwell)")

	// Add subcommands
	cmd.AddCommand(searchcmder.NewSearchCmd())
	cmd.AddCommand(askcmder.NewAskCmd())
	cmd.AddCommand(servecmder.NewServeCmd())
	cmd.AddCommand(feedscmder.NewFeedsCmd())
	cmd.AddCommand(modelscmder.NewModelsCmd())
	cmd.AddCommand(historycmder.NewHistoryCmd())
	cmd.AddCommand(configcmder.NewConfigCmd())
	cmd.AddCommand(initcmder.NewInitCmd())
	cmd.AddCommand(versioncmder.NewVersionCmd())

	return cmd
}
