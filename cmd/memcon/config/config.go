// Package configcmder provides the config command for managing persistent
// memcon configuration stored in the .memcon/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent memcon configuration.

Configuration is stored as config.toml in the .memcon/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values.

Keys use dotted notation matching the TOML section structure:
  client.api_target, client.timeout_seconds,
  health.interval_seconds, console.sort

Use subcommands to get, set, or list configuration values:
  memcon config set <key> <value>    Set a configuration value
  memcon config get <key>            Get a configuration value
  memcon config list                 List all configuration values

Examples:
  memcon config set client.api_target http://localhost:8000
  memcon config set console.sort confidence
  memcon config get client.api_target
  memcon config list`

const configShortDesc string = "Manage persistent memcon configuration"

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
