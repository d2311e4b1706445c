// Package configcmder provides the config command for managing persistent
// veilix configuration stored in the .veilix/ directory.
package configcmder

import (
	"github.com/spf13/cobra"
)

const configLongDesc string = `Manage persistent veilix configuration.

Configuration is stored as config.toml in the .veilix/ directory and provides
default values for command flags. CLI flags always take precedence over
config file values.

Keys use dotted notation matching the TOML section structure:
  api.target,
  client.timeout_seconds,
  chat.default_bucket,
  history.enabled, history.sqlite_path,
  logging.debug

Use subcommands to get, set, or list configuration values:
  veilix config set <key> <value>    Set a configuration value
  veilix config get <key>            Get a configuration value
  veilix config list                 List all configuration values

Examples:
  veilix config set api.target https://api.aiveilix.com
  veilix config set chat.default_bucket <bucket-id>
  veilix config get api.target
  veilix config list`

const configShortDesc string = "Manage persistent veilix configuration"

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
