package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pystarter/pystarter/internal/branding"
	"github.com/pystarter/pystarter/internal/config"
	"github.com/pystarter/pystarter/internal/logging"
	"github.com/pystarter/pystarter/internal/platform"
	"github.com/pystarter/pystarter/internal/runtime"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	verbose   bool
	logFormat string
)

// Swapped out by tests.
var (
	detectFamily = platform.Detect
	newRunner    = func(cmd *cobra.Command) runtime.Runner {
		r := &runtime.ExecRunner{Logger: logging.Logger}
		if verbose {
			r.Stdout = cmd.ErrOrStderr()
			r.Stderr = cmd.ErrOrStderr()
		}
		return r
	}
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [name]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` creates a Python project skeleton (package, docs and tests
directories, README and .gitignore), a virtual environment with the default
packages installed, and a requirements.txt listing them.

Run without arguments to be prompted for the project name. A project named
after a subcommand (create, doctor, config, version, help) must be created
with "pystarter create <name>".`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}

		format := logFormat
		if !cmd.Flags().Changed("log-format") {
			format = config.Current().LogFormat
		}
		format, err := logging.ParseFormat(format)
		if err != nil {
			return err
		}
		logging.Setup(verbose, format == logging.FormatJSON, cmd.ErrOrStderr())
		return nil
	},
	RunE: runCreate,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging and stream tool output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.FormatText, "Log format: text or json")
	addCreateFlags(rootCmd)
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		logging.Error("command failed", "error", err)
	}
	return err
}
