package venv

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pystarter/pystarter/internal/fsbuild"
	"github.com/pystarter/pystarter/internal/logging"
	"github.com/pystarter/pystarter/internal/runtime"
)

// DefaultPackages is the package set installed into a new environment.
var DefaultPackages = []string{"pandas", "pytest"}

// DefaultManifestFile is the file the resolved package set is exported to.
const DefaultManifestFile = "requirements.txt"

// Installer manages packages inside an Environment.
type Installer struct {
	Runner runtime.Runner
	Env    *Environment
	Files  *fsbuild.Builder // project root; the manifest is written through it
	Check  runtime.ExitPolicy
	Logger *slog.Logger
}

// UpgradePip runs "<env>/python -m pip install --upgrade pip".
func (i *Installer) UpgradePip(ctx context.Context) error {
	logging.Or(i.Logger).Info("upgrading pip", "env", i.Env.Dir)
	_, err := i.run(ctx, i.Env.Python(), "-m", "pip", "install", "--upgrade", "pip")
	if err != nil {
		return fmt.Errorf("upgrading pip: %w", err)
	}
	return nil
}

// Install runs "<env>/pip install <packages...>".
func (i *Installer) Install(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		return nil
	}
	logger := logging.Or(i.Logger)
	logger.Info("installing packages", "packages", strings.Join(packages, ", "))

	args := append([]string{"install"}, packages...)
	res, err := i.run(ctx, i.Env.Pip(), args...)
	if err != nil {
		return fmt.Errorf("installing packages: %w", err)
	}
	if res.ExitCode == 0 {
		logger.Info("packages installed", "packages", strings.Join(packages, ", "))
	}
	return nil
}

// InstallDefaults upgrades pip and then installs packages.
func (i *Installer) InstallDefaults(ctx context.Context, packages []string) error {
	if err := i.UpgradePip(ctx); err != nil {
		return err
	}
	return i.Install(ctx, packages)
}

// ExportManifest runs "<env>/pip freeze" and writes its output to
// outputFile, relative to the project root. The file is truncated first.
func (i *Installer) ExportManifest(ctx context.Context, outputFile string) error {
	if outputFile == "" {
		outputFile = DefaultManifestFile
	}

	res, err := i.run(ctx, i.Env.Pip(), "freeze")
	if err != nil {
		return fmt.Errorf("exporting %s: %w", outputFile, err)
	}
	if err := i.Files.WriteFile(outputFile, res.Stdout); err != nil {
		return fmt.Errorf("exporting %s: %w", outputFile, err)
	}
	logging.Or(i.Logger).Info("requirements file generated", "file", outputFile)
	return nil
}

func (i *Installer) run(ctx context.Context, name string, args ...string) (*runtime.Result, error) {
	res, err := i.Runner.Run(ctx, name, args, runtime.Options{
		Dir: i.Files.Root,
		Env: i.Env.Vars(),
	})
	if err != nil {
		return nil, err
	}
	if err := checkOr(i.Check)(res); err != nil {
		return res, err
	}
	return res, nil
}
