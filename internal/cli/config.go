package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pystarter/pystarter/internal/config"
	"github.com/pystarter/pystarter/internal/ui"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configValidateCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long: `Read and write settings stored at ~/.pystarter/config.yaml.

Keys: interpreter, env_name, packages, manifest_file, keep_going, log_format.
Each key can also be set with a PYSTARTER_<KEY> environment variable.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List effective configuration values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, key := range config.Keys() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, config.Get(key))
		}
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a configuration file",
	Long:  `Validate the configuration file (default ~/.pystarter/config.yaml) against the built-in schema.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.FilePath()
		if len(args) == 1 {
			path = args[0]
		}
		return runConfigValidate(ui.NewPrinter(cmd.OutOrStdout()), path)
	},
}

func runConfigValidate(p *ui.Printer, path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		p.Success("No config file at %s; defaults apply", path)
		return nil
	}

	result, err := config.ValidateFile(path)
	if err != nil {
		p.Failure("%v", err)
		return fmt.Errorf("config validation failed: %w", err)
	}
	if result.Valid {
		p.Success("Valid config: %s", path)
		return nil
	}

	p.Failure("%d validation issue(s) in %s:", len(result.Issues), path)
	for _, issue := range result.Issues {
		if issue.Path != "" {
			p.Detail("- %s: %s", issue.Path, issue.Message)
		} else {
			p.Detail("- %s", issue.Message)
		}
	}
	return fmt.Errorf("config %s has %d validation issue(s)", path, len(result.Issues))
}
