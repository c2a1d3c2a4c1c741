package cli

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/hugovk/clufter/internal/rules"
)

var (
	listOutput     string
	listConstraint string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the resource rules found in the rule directory",
	Long: `Run discovery over the rule directory and list every resource type it produced.
Use --constraint to keep only rules whose version satisfies a semver range.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listOutput, "output", "o", formatTable, "Output format (table, json, yaml)")
	listCmd.Flags().StringVar(&listConstraint, "constraint", "", "Semver range the rule version must satisfy (e.g. \">= 1.0\")")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	if err := checkFormat(listOutput); err != nil {
		return err
	}

	catalog, _, err := currentCatalog(cmd.Context())
	if err != nil {
		return err
	}
	defer catalog.Destroy()

	rs, err := filterRules(catalog, listConstraint)
	if err != nil {
		return err
	}

	if listOutput != formatTable {
		return writeStructured(cmd.OutOrStdout(), listOutput, views(rs))
	}
	if len(rs) == 0 {
		if listConstraint != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No resource rules matching --constraint=%s\n", listConstraint)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No resource rules found.")
		}
		return nil
	}
	return printRulesTable(cmd.OutOrStdout(), rs)
}

// filterRules returns the catalog's rules, restricted to a semver range when
// constraint is set.
func filterRules(catalog *rules.Catalog, constraint string) ([]*rules.ResourceRule, error) {
	if constraint == "" {
		return catalog.Rules(), nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing constraint %q", constraint)
	}
	return catalog.Matching(c), nil
}
