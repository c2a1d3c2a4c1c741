package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hugovk/clufter/internal/branding"
	"github.com/hugovk/clufter/internal/config"
	"github.com/hugovk/clufter/internal/logging"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	logger = zap.NewNop()
)

// flagKeys maps persistent flags to the config keys they override.
var flagKeys = map[string]string{
	"dir":       config.KeyRuleDir,
	"raw":       config.KeyRawMetadata,
	"ext":       config.KeyMetadataExt,
	"timeout":   config.KeyExtractTimeout,
	"log-level": config.KeyLogLevel,
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` discovers cluster resource agents, reads the XML metadata
they publish, and builds the catalog of resource rules it describes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		for flag, key := range flagKeys {
			if err := viper.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(flag)); err != nil {
				return errors.Wrapf(err, "binding --%s", flag)
			}
		}

		l, err := logging.New(viper.GetString(config.KeyLogLevel))
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.String("dir", config.DefaultRuleDir, "Directory holding the resource agents")
	f.Bool("raw", false, "Read pre-rendered metadata files instead of running agents")
	f.String("ext", config.DefaultMetadataExt, "Extension of pre-rendered metadata files")
	f.Duration("timeout", config.DefaultExtractTimeout, "Time allowed for each agent to print its metadata (0 disables)")
	f.String("log-level", config.DefaultLogLevel, "Log level (debug, info, warn, error)")
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
