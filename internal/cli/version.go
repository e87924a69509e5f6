package cli

import (
	"encoding/json"
	"fmt"
	goruntime "runtime"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/pystarter/pystarter/internal/branding"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print version info as JSON")
	rootCmd.AddCommand(versionCmd)
}

// buildInfo is what "version" reports. Platform is the host family the
// scaffolder would see, so bug reports carry it.
type buildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go"`
	Platform  string `json:"platform"`
	Supported bool   `json:"supported"`
}

func currentBuildInfo() buildInfo {
	family := detectFamily()
	return buildInfo{
		Version:   resolvedVersion(),
		Commit:    orUnknown(buildCommit),
		Date:      orUnknown(buildDate),
		GoVersion: goruntime.Version(),
		Platform:  string(family),
		Supported: family.Supported(),
	}
}

// resolvedVersion prefers the ldflags value and falls back to the module
// version recorded by "go install".
func resolvedVersion() string {
	if buildVersion != "" {
		return buildVersion
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return "dev"
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		info := currentBuildInfo()

		switch {
		case versionShort:
			fmt.Fprintln(out, info.Version)
		case versionJSON:
			data, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(out, string(data))
		default:
			support := "supported"
			if !info.Supported {
				support = "unsupported"
			}
			fmt.Fprintf(out, "%s version %s (commit: %s, built: %s)\n", branding.CLIName(), info.Version, info.Commit, info.Date)
			fmt.Fprintf(out, "  %s, platform %s (%s)\n", info.GoVersion, info.Platform, support)
		}
		return nil
	},
}
