package venv

import (
	"context"
	"fmt"
	"log/slog"

	shellquote "github.com/kballard/go-shellquote"

	"github.com/pystarter/pystarter/internal/logging"
	"github.com/pystarter/pystarter/internal/platform"
	"github.com/pystarter/pystarter/internal/runtime"
)

// DefaultInterpreter is the interpreter used to create environments.
const DefaultInterpreter = "python"

// Provisioner creates virtual environments under Root.
type Provisioner struct {
	Runner      runtime.Runner
	Interpreter string // may carry arguments, e.g. "py -3"
	Family      platform.Family
	Root        string
	Check       runtime.ExitPolicy
	Logger      *slog.Logger
}

// Create runs "<interpreter> -m venv <name>" in Root and returns the
// resulting environment. The command result goes through Check; a nil Check
// means runtime.Strict.
func (p *Provisioner) Create(ctx context.Context, name string) (*Environment, error) {
	logger := logging.Or(p.Logger)
	if name == "" {
		name = DefaultName
	}

	env, err := NewEnvironment(p.Root, name, p.Family)
	if err != nil {
		return nil, err
	}

	bin, args, err := splitInterpreter(p.Interpreter)
	if err != nil {
		return nil, err
	}
	args = append(args, "-m", "venv", name)

	res, err := p.Runner.Run(ctx, bin, args, runtime.Options{Dir: p.Root})
	if err != nil {
		return nil, fmt.Errorf("creating virtual environment: %w", err)
	}
	if err := checkOr(p.Check)(res); err != nil {
		return nil, fmt.Errorf("creating virtual environment: %w", err)
	}
	if res.ExitCode == 0 {
		logger.Info("virtual environment created", "name", name, "path", env.Dir)
	}
	return env, nil
}

// splitInterpreter parses an interpreter setting into a binary and leading
// arguments.
func splitInterpreter(s string) (string, []string, error) {
	if s == "" {
		s = DefaultInterpreter
	}
	words, err := shellquote.Split(s)
	if err != nil {
		return "", nil, fmt.Errorf("parsing interpreter %q: %w", s, err)
	}
	if len(words) == 0 {
		return DefaultInterpreter, nil, nil
	}
	return words[0], words[1:], nil
}

func checkOr(p runtime.ExitPolicy) runtime.ExitPolicy {
	if p != nil {
		return p
	}
	return runtime.Strict
}
