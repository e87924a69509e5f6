package runtime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// Runner executes an external command.
type Runner interface {
	// Run executes name with args. A process that exits non-zero yields a
	// Result with ExitCode set and a nil error.
	Run(ctx context.Context, name string, args []string, opts Options) (*Result, error)
}

// Options holds optional parameters for a command execution.
type Options struct {
	Dir string            // working directory
	Env map[string]string // variables overlaid on the inherited environment
}

// Result captures the outcome of a command execution.
type Result struct {
	Command  string // shell-quoted command line, for logs and errors
	ExitCode int
	Stdout   string
	Stderr   string
}

// ExitError reports a command that ran but exited non-zero.
type ExitError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("command %q exited with status %d", e.Command, e.ExitCode)
	if tail := lastLine(e.Stderr); tail != "" {
		msg += ": " + tail
	}
	return msg
}

// Check returns an *ExitError when the command exited non-zero.
func (r *Result) Check() error {
	if r == nil || r.ExitCode == 0 {
		return nil
	}
	return &ExitError{Command: r.Command, ExitCode: r.ExitCode, Stderr: r.Stderr}
}

// IsExitError reports whether err wraps an *ExitError.
func IsExitError(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// CommandLine renders name and args as a shell-quoted string.
func CommandLine(name string, args ...string) string {
	return shellquote.Join(append([]string{name}, args...)...)
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}

// ExitPolicy receives every Result a component produces and decides whether
// the run continues. Returning an error stops the run.
type ExitPolicy func(*Result) error

// Strict is the ExitPolicy that treats any non-zero exit as fatal.
func Strict(r *Result) error {
	return r.Check()
}
