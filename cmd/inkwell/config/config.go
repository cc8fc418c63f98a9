// Package configcmder provides the config command for managing persistent
// inkwell configuration stored in the .inkwell/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent inkwell configuration.

Configuration is stored as config.toml in the .inkwell/ directory and
provides default values for command flags. CLI flags always take precedence
over config file values, and INKWELL_* environment variables sit between
the two.

Keys use dotted notation matching the TOML section structure:
  backend.target, web.listen,
  ask.provider, ask.model, ask.limit, ask.stream,
  registry.feeds_path, registry.models_path,
  storage.sqlite_path

Use subcommands to get, set, or list configuration values:
  inkwell config set <key> <value>    Set a configuration value
  inkwell config get <key>            Get a configuration value
  inkwell config list                 List all configuration values

Examples:
  inkwell config set backend.target http://backend:8080
  inkwell config set ask.provider openrouter
  inkwell config get ask.model
  inkwell config list`

const configShortDesc string = "Manage persistent inkwell configuration"

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: configShortDesc,
		Long:  configLongDesc,
	}

	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newListCmd())

	return cmd
}
