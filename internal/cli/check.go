package cli

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/hugovk/clufter/internal/discovery"
)

var errCheckFailed = errors.New("some agents could not be loaded")

var checkStrict bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run discovery and report what it found",
	Long: `Run discovery over the rule directory and print how many candidates were
examined, skipped, loaded, and rejected. With --strict, any failed candidate
or rejected rule makes the command fail.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, res, err := currentCatalog(cmd.Context())
		if err != nil {
			return err
		}
		defer catalog.Destroy()

		printCheck(cmd.OutOrStdout(), res)
		if checkStrict && (res.Failed > 0 || res.Rejected > 0) {
			return errors.Wrapf(errCheckFailed, "%d failed, %d rejected", res.Failed, res.Rejected)
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Fail when any agent fails or any rule is rejected")
	rootCmd.AddCommand(checkCmd)
}

func printCheck(w io.Writer, res *discovery.Result) {
	dir := res.Dir
	if res.Fallback {
		dir += " (fallback)"
	}
	fmt.Fprintf(w, "Rule directory: %s\n", dir)
	fmt.Fprintf(w, "  candidates: %d\n", res.Candidates)
	fmt.Fprintf(w, "  skipped:    %d\n", res.Skipped)
	fmt.Fprintf(w, "  failed:     %d\n", res.Failed)
	fmt.Fprintf(w, "  rules:      %d\n", res.Added)
	fmt.Fprintf(w, "  rejected:   %d\n", res.Rejected)
}
