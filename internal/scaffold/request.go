package scaffold

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pystarter/pystarter/internal/platform"
	"github.com/pystarter/pystarter/internal/venv"
)

// ErrInvalidName is returned for project names that cannot be used as a
// single directory name.
var ErrInvalidName = errors.New("invalid project name")

// ErrInvalidEnvName is returned for environment names that would place the
// environment outside the project root.
var ErrInvalidEnvName = errors.New("invalid environment name")

// Request holds everything needed to scaffold one project.
type Request struct {
	Name         string          // project name, used verbatim for directories and seed contents
	BaseDir      string          // parent directory of the project root
	Family       platform.Family // host family
	Interpreter  string          // interpreter that creates the environment
	EnvName      string          // environment directory name
	Packages     []string        // packages installed into the environment
	ManifestFile string          // file the resolved package set is exported to
	SkipEnv      bool            // skip environment creation and package install
	KeepGoing    bool            // continue after a failed external command
}

// NewRequest returns a Request for name on family with default settings.
func NewRequest(name string, family platform.Family) *Request {
	return &Request{
		Name:         name,
		BaseDir:      ".",
		Family:       family,
		Interpreter:  venv.DefaultInterpreter,
		EnvName:      venv.DefaultName,
		Packages:     append([]string(nil), venv.DefaultPackages...),
		ManifestFile: venv.DefaultManifestFile,
	}
}

// ScriptsDir returns the environment's executables directory for the
// request's family.
func (r *Request) ScriptsDir() (string, error) {
	return platform.ScriptsDir(r.Family)
}

// ValidateName checks that name is non-empty and usable as one directory name.
func ValidateName(name string) error {
	return checkSegment(ErrInvalidName, name)
}

// ValidateEnvName applies the project name rules to an environment name, so
// the environment always lands directly under the project root.
func ValidateEnvName(name string) error {
	return checkSegment(ErrInvalidEnvName, name)
}

func checkSegment(sentinel error, name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("%w: name is empty", sentinel)
	case name == "." || name == "..":
		return fmt.Errorf("%w: %q", sentinel, name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("%w: %q contains a path separator", sentinel, name)
	case strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: %q contains a NUL byte", sentinel, name)
	}
	return nil
}
