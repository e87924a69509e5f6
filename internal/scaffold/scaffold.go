package scaffold

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/pystarter/pystarter/internal/fsbuild"
	"github.com/pystarter/pystarter/internal/logging"
	"github.com/pystarter/pystarter/internal/platform"
	"github.com/pystarter/pystarter/internal/runtime"
	"github.com/pystarter/pystarter/internal/venv"
)

// Result holds the outcome of a scaffold run.
type Result struct {
	ProjectDir  string
	ScriptsDir  string
	Dirs        []string // created by this run, relative to ProjectDir
	Files       []string // written, relative to ProjectDir
	Warnings    []string
	Steps       []*runtime.Result
	Env         *venv.Environment // nil when the environment was skipped or not created
	Interpreter *venv.Interpreter // nil when the environment was skipped
}

// Scaffolder creates projects.
type Scaffolder struct {
	Runner runtime.Runner
	Logger *slog.Logger
}

// New returns a Scaffolder running external commands through r.
func New(r runtime.Runner, logger *slog.Logger) *Scaffolder {
	return &Scaffolder{Runner: r, Logger: logger}
}

// Create scaffolds the project described by req. Nothing is written to disk
// when the project or environment name or the host family is rejected, or
// when the interpreter cannot be used.
func (s *Scaffolder) Create(ctx context.Context, req *Request) (*Result, error) {
	logger := logging.Or(s.Logger)
	logger.Info("starting project", "name", req.Name)
	logger.Info("operating system", "os", string(req.Family))

	if err := ValidateName(req.Name); err != nil {
		return nil, err
	}
	if err := ValidateEnvName(envName(req)); err != nil {
		return nil, err
	}
	if !platform.Validate(logger, req.Family) {
		return nil, fmt.Errorf("%w: %q", platform.ErrUnsupportedOS, string(req.Family))
	}
	scripts, err := req.ScriptsDir()
	if err != nil {
		return nil, err
	}

	result := &Result{ScriptsDir: scripts}

	if !req.SkipEnv {
		interp, err := venv.ProbeInterpreter(ctx, s.Runner, req.Interpreter)
		if err != nil {
			return nil, err
		}
		logger.Info("using interpreter", "cmd", interp.Command, "version", interp.Version.String())
		result.Interpreter = interp
	}

	baseDir, err := filepath.Abs(req.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("resolving base directory %s: %w", req.BaseDir, err)
	}

	base := fsbuild.New(baseDir, logger)
	if err := s.createDir(base, req.Name, result, false); err != nil {
		return nil, err
	}
	projectDir, err := base.Path(req.Name)
	if err != nil {
		return nil, err
	}
	result.ProjectDir = projectDir

	files := fsbuild.New(projectDir, logger)
	for _, dir := range Dirs(req.Name) {
		if err := s.createDir(files, dir, result, true); err != nil {
			return result, err
		}
	}
	for _, seed := range SeedFiles(req.Name, envName(req)) {
		if err := files.WriteFile(filepath.FromSlash(seed.Path), seed.Content); err != nil {
			return result, err
		}
		result.Files = append(result.Files, seed.Path)
	}

	if req.SkipEnv {
		logger.Info("skipping virtual environment")
		return result, nil
	}

	check := s.exitPolicy(req, result)

	prov := &venv.Provisioner{
		Runner:      s.Runner,
		Interpreter: req.Interpreter,
		Family:      req.Family,
		Root:        projectDir,
		Check:       check,
		Logger:      logger,
	}
	env, err := prov.Create(ctx, envName(req))
	if err != nil {
		return result, err
	}
	if stepFailed(result) {
		msg := fmt.Sprintf("virtual environment %s was not created; skipping package install", env.Name)
		logger.Warn("skipping package install", "env", env.Dir)
		result.Warnings = append(result.Warnings, msg)
		return result, nil
	}
	result.Env = env

	inst := &venv.Installer{
		Runner: s.Runner,
		Env:    env,
		Files:  files,
		Check:  check,
		Logger: logger,
	}
	if err := inst.InstallDefaults(ctx, req.Packages); err != nil {
		return result, err
	}

	manifest := req.ManifestFile
	if manifest == "" {
		manifest = venv.DefaultManifestFile
	}
	if err := inst.ExportManifest(ctx, manifest); err != nil {
		return result, err
	}
	result.Files = append(result.Files, filepath.ToSlash(manifest))

	return result, nil
}

func (s *Scaffolder) createDir(b *fsbuild.Builder, rel string, result *Result, record bool) error {
	created, err := b.CreateDir(rel)
	if err != nil {
		return err
	}
	if !created {
		result.Warnings = append(result.Warnings, fmt.Sprintf("directory already exists: %s", filepath.Join(b.Root, rel)))
		return nil
	}
	if record {
		result.Dirs = append(result.Dirs, filepath.ToSlash(rel))
	}
	return nil
}

// exitPolicy records every command result and, with KeepGoing, downgrades
// non-zero exits to warnings.
func (s *Scaffolder) exitPolicy(req *Request, result *Result) runtime.ExitPolicy {
	logger := logging.Or(s.Logger)
	return func(r *runtime.Result) error {
		result.Steps = append(result.Steps, r)
		err := r.Check()
		if err == nil || !req.KeepGoing {
			return err
		}
		logger.Warn("command failed, continuing", "cmd", r.Command, "exit_code", r.ExitCode)
		result.Warnings = append(result.Warnings, err.Error())
		return nil
	}
}

// stepFailed reports whether the most recent command exited non-zero. Only
// reachable with KeepGoing, since the strict policy stops the run instead.
func stepFailed(result *Result) bool {
	n := len(result.Steps)
	return n > 0 && result.Steps[n-1].ExitCode != 0
}

func envName(req *Request) string {
	if req.EnvName == "" {
		return venv.DefaultName
	}
	return req.EnvName
}
