package cli

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pystarter/pystarter/internal/config"
	"github.com/pystarter/pystarter/internal/interaction"
	"github.com/pystarter/pystarter/internal/logging"
	"github.com/pystarter/pystarter/internal/platform"
	"github.com/pystarter/pystarter/internal/scaffold"
	"github.com/pystarter/pystarter/internal/ui"
)

// Flags shared by the root command and "create".
var (
	createOutputDir   string
	createInterpreter string
	createEnvName     string
	createPackages    []string
	createNoEnv       bool
	createKeepGoing   bool
)

func init() {
	addCreateFlags(createCmd)
	rootCmd.AddCommand(createCmd)
}

func addCreateFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&createOutputDir, "output-dir", ".", "Parent directory for the project")
	cmd.Flags().StringVar(&createInterpreter, "interpreter", "", "Interpreter used to create the environment (default from config, else python)")
	cmd.Flags().StringVar(&createEnvName, "env-name", "", "Virtual environment directory name (default from config, else venv)")
	cmd.Flags().StringSliceVar(&createPackages, "package", nil, "Package to install; repeatable, replaces the defaults")
	cmd.Flags().BoolVar(&createNoEnv, "no-env", false, "Skip virtual environment creation and package install")
	cmd.Flags().BoolVar(&createKeepGoing, "keep-going", false, "Continue after a failed external command")
}

var createCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Scaffold a new Python project",
	Long: `Scaffold a new Python project with a virtual environment.

Examples:
  pystarter create my_app
  pystarter create my_app --output-dir ~/code --package requests --package pytest
  echo my_app | pystarter create --no-env`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	name, err := resolveName(cmd, args)
	if err != nil {
		return err
	}

	req := buildRequest(cmd, name, config.Current(), detectFamily())

	sc := scaffold.New(newRunner(cmd), logging.Logger)
	result, err := sc.Create(cmd.Context(), req)
	if err != nil {
		return err
	}

	printResult(cmd.OutOrStdout(), result)
	return nil
}

func resolveName(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	name, err := interaction.PromptLine(cmd.InOrStdin(), cmd.ErrOrStderr(), "Project name: ")
	if err != nil {
		return "", fmt.Errorf("reading project name: %w", err)
	}
	return name, nil
}

// buildRequest layers flags over config over defaults.
func buildRequest(cmd *cobra.Command, name string, s config.Settings, family platform.Family) *scaffold.Request {
	req := scaffold.NewRequest(name, family)
	req.BaseDir = createOutputDir
	req.Interpreter = s.Interpreter
	req.EnvName = s.EnvName
	req.Packages = s.Packages
	req.ManifestFile = s.ManifestFile
	req.KeepGoing = s.KeepGoing

	flags := cmd.Flags()
	if flags.Changed("interpreter") {
		req.Interpreter = createInterpreter
	}
	if flags.Changed("env-name") {
		req.EnvName = createEnvName
	}
	if flags.Changed("package") {
		req.Packages = createPackages
	}
	if flags.Changed("keep-going") {
		req.KeepGoing = createKeepGoing
	}
	req.SkipEnv = createNoEnv
	return req
}

func printResult(w io.Writer, result *scaffold.Result) {
	p := ui.NewPrinter(w)
	p.Success("Project created successfully!")
	p.Line("%s/", result.ProjectDir)
	for _, d := range result.Dirs {
		p.Detail("%s/", d)
	}
	for _, f := range result.Files {
		p.Detail("%s", f)
	}

	if len(result.Warnings) > 0 {
		p.Line("\nWarnings:")
		for _, msg := range result.Warnings {
			p.Warning("%s", msg)
		}
	}

	p.Line("\nNext steps:")
	rel := filepath.Base(result.ProjectDir)
	p.Line("  1. cd %s", rel)
	if result.Env == nil {
		p.Line("  2. Create a virtual environment: python -m venv venv")
		return
	}
	activate, _ := filepath.Rel(result.ProjectDir, result.Env.ActivationScript())
	if result.Env.Family == platform.Windows {
		p.Line("  2. Activate the environment: call %s", activate)
	} else {
		p.Line("  2. Activate the environment: source %s", filepath.ToSlash(activate))
	}
	p.Line("  3. Run the tests: pytest")
}
