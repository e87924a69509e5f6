package venv

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/pystarter/pystarter/internal/runtime"
)

// MinPythonVersion is the oldest interpreter shipping the venv module.
const MinPythonVersion = ">= 3.3"

var versionPattern = regexp.MustCompile(`(\d+(?:\.\d+){0,2})`)

// Interpreter describes a probed Python interpreter.
type Interpreter struct {
	Command string
	Version *semver.Version
}

// ProbeInterpreter runs "<interpreter> --version" and checks the reported
// version against MinPythonVersion.
func ProbeInterpreter(ctx context.Context, r runtime.Runner, interpreter string) (*Interpreter, error) {
	bin, args, err := splitInterpreter(interpreter)
	if err != nil {
		return nil, err
	}

	res, err := r.Run(ctx, bin, append(args, "--version"), runtime.Options{})
	if err != nil {
		return nil, fmt.Errorf("probing interpreter: %w", err)
	}
	if err := res.Check(); err != nil {
		return nil, fmt.Errorf("probing interpreter: %w", err)
	}

	// Python 2 printed the version on stderr.
	v, err := ParsePythonVersion(res.Stdout + res.Stderr)
	if err != nil {
		return nil, fmt.Errorf("probing interpreter %s: %w", res.Command, err)
	}

	ok, err := SupportsVenv(v)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("interpreter %s is Python %s; the venv module needs Python %s", res.Command, v, MinPythonVersion)
	}
	return &Interpreter{Command: res.Command, Version: v}, nil
}

// ParsePythonVersion extracts the version from "Python 3.12.1" style output.
// Pre-release suffixes such as "rc1" are dropped.
func ParsePythonVersion(output string) (*semver.Version, error) {
	output = strings.TrimSpace(output)
	m := versionPattern.FindString(strings.TrimPrefix(output, "Python"))
	if m == "" {
		return nil, fmt.Errorf("no version number in %q", output)
	}
	v, err := semver.NewVersion(m)
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", m, err)
	}
	return v, nil
}

// SupportsVenv reports whether v satisfies MinPythonVersion.
func SupportsVenv(v *semver.Version) (bool, error) {
	c, err := semver.NewConstraint(MinPythonVersion)
	if err != nil {
		return false, fmt.Errorf("parsing constraint %q: %w", MinPythonVersion, err)
	}
	return c.Check(v), nil
}
