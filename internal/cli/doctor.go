package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pystarter/pystarter/internal/config"
	"github.com/pystarter/pystarter/internal/logging"
	"github.com/pystarter/pystarter/internal/platform"
	"github.com/pystarter/pystarter/internal/venv"
)

var doctorInterpreter string

func init() {
	doctorCmd.Flags().StringVar(&doctorInterpreter, "interpreter", "", "Interpreter to check (default from config, else python)")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that this host can scaffold projects",
	Long: `Check the host operating system, the Python interpreter used to create
virtual environments, and the configuration file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		interpreter := config.Current().Interpreter
		if cmd.Flags().Changed("interpreter") {
			interpreter = doctorInterpreter
		}
		return runDoctor(cmd, interpreter)
	},
}

func runDoctor(cmd *cobra.Command, interpreter string) error {
	out := cmd.OutOrStdout()
	failed := 0

	fmt.Fprintln(out, "Platform check:")
	family := detectFamily()
	if platform.Validate(logging.Logger, family) {
		scripts, _ := platform.ScriptsDir(family)
		check(out, true, "%s is supported (environment executables in %s/)", family, scripts)
	} else {
		check(out, false, "%s is not supported: only Linux and Windows are", family)
		failed++
	}

	fmt.Fprintln(out, "Interpreter check:")
	interp, err := venv.ProbeInterpreter(cmd.Context(), newRunner(cmd), interpreter)
	if err != nil {
		check(out, false, "%v", err)
		failed++
	} else {
		check(out, true, "%s reports Python %s (needs %s)", interpreter, interp.Version, venv.MinPythonVersion)
	}

	fmt.Fprintln(out, "Config check:")
	if err := runConfigValidateQuiet(out); err != nil {
		failed++
	}

	if failed > 0 {
		return fmt.Errorf("%d check(s) failed", failed)
	}
	return nil
}

func runConfigValidateQuiet(out io.Writer) error {
	path := config.FilePath()
	result, err := config.ValidateFile(path)
	switch {
	case err != nil && !fileExists(path):
		check(out, true, "no config file; defaults apply")
		return nil
	case err != nil:
		check(out, false, "%v", err)
		return err
	case !result.Valid:
		check(out, false, "%s has %d issue(s); run 'config validate' for details", path, len(result.Issues))
		return fmt.Errorf("invalid config")
	default:
		check(out, true, "%s is valid", path)
		return nil
	}
}

func check(out io.Writer, ok bool, format string, args ...any) {
	status := "[ OK ]"
	if !ok {
		status = "[FAIL]"
	}
	fmt.Fprintf(out, "  %s %s\n", status, fmt.Sprintf(format, args...))
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
