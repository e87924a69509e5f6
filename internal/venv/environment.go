package venv

import (
	"os"
	"path/filepath"

	"github.com/pystarter/pystarter/internal/platform"
)

// DefaultName is the environment directory name used when none is configured.
const DefaultName = "venv"

// Environment describes a virtual environment on disk.
type Environment struct {
	Name       string          // directory name, e.g. "venv"
	Dir        string          // absolute path to the environment
	Family     platform.Family // host family the environment was created for
	ScriptsDir string          // "Scripts" or "bin"
}

// NewEnvironment describes the environment name under root for family f.
func NewEnvironment(root, name string, f platform.Family) (*Environment, error) {
	scripts, err := platform.ScriptsDir(f)
	if err != nil {
		return nil, err
	}
	return &Environment{
		Name:       name,
		Dir:        filepath.Join(root, name),
		Family:     f,
		ScriptsDir: scripts,
	}, nil
}

// Bin returns the path of an executable inside the environment.
func (e *Environment) Bin(name string) string {
	return filepath.Join(e.Dir, e.ScriptsDir, platform.Executable(e.Family, name))
}

// Python returns the environment's interpreter.
func (e *Environment) Python() string { return e.Bin("python") }

// Pip returns the environment's pip executable.
func (e *Environment) Pip() string { return e.Bin("pip") }

// ActivationScript returns the script a user sources (or calls, on Windows)
// to activate the environment in their own shell.
func (e *Environment) ActivationScript() string {
	return filepath.Join(e.Dir, e.ScriptsDir, "activate")
}

// Vars returns the variables activation would set for a child process.
func (e *Environment) Vars() map[string]string {
	path := filepath.Join(e.Dir, e.ScriptsDir)
	if cur := os.Getenv("PATH"); cur != "" {
		path += string(os.PathListSeparator) + cur
	}
	return map[string]string{
		"VIRTUAL_ENV": e.Dir,
		"PATH":        path,
	}
}

// GitignorePattern returns the .gitignore entry excluding the environment.
func (e *Environment) GitignorePattern() string {
	return GitignorePattern(e.Name)
}

// GitignorePattern returns the .gitignore entry excluding an environment
// directory called name.
func GitignorePattern(name string) string {
	return name + "/*"
}
