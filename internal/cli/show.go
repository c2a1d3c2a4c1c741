package cli

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

var errUnknownType = errors.New("no rule for resource type")

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show <type>",
	Short: "Show one resource rule with its attributes, actions, and child types",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkFormat(showOutput); err != nil {
			return err
		}

		catalog, _, err := currentCatalog(cmd.Context())
		if err != nil {
			return err
		}
		defer catalog.Destroy()

		rule, ok := catalog.Get(args[0])
		if !ok {
			return errors.Wrapf(errUnknownType, "%q", args[0])
		}
		if showOutput != formatTable {
			return writeStructured(cmd.OutOrStdout(), showOutput, rule.View())
		}
		return printRuleDetail(cmd.OutOrStdout(), rule)
	},
}

func init() {
	showCmd.Flags().StringVarP(&showOutput, "output", "o", formatTable, "Output format (table, json, yaml)")
	rootCmd.AddCommand(showCmd)
}
