package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/hugovk/clufter/internal/branding"
	"github.com/hugovk/clufter/internal/config"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write resrules configuration stored at ~/.resrules/config.yaml.
Each setting can also come from a RESRULES_* environment variable or, for
the rule directory, extension, timeout, and log level, from a root flag.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long:  `Set a configuration value. The value is checked against the config schema before the file is written.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return errors.Wrapf(err, "setting config key %q", key)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s (%s)\n", key, config.Get(key), config.FilePath())
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get one configuration value, or list every setting",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			value, err := config.Lookup(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), value)
			return nil
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(tw, "KEY\tVALUE\tENV")
		for _, key := range config.Keys() {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", key, orDash(config.Get(key)), branding.EnvVar(key))
		}
		return tw.Flush()
	},
}
