package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sort"

	"github.com/pystarter/pystarter/internal/logging"
)

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stdout and Stderr, when set, receive the process output as it is
	// produced. Output is always captured in the Result as well.
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// Run executes the command and captures stdout/stderr.
func (r *ExecRunner) Run(ctx context.Context, name string, args []string, opts Options) (*Result, error) {
	logger := logging.Or(r.Logger)
	line := CommandLine(name, args...)

	cmd := exec.CommandContext(ctx, name, args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}
	if len(opts.Env) > 0 {
		cmd.Env = overlayEnv(cmd.Environ(), opts.Env)
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf
	if r.Stdout != nil {
		cmd.Stdout = io.MultiWriter(r.Stdout, &stdoutBuf)
	}
	if r.Stderr != nil {
		cmd.Stderr = io.MultiWriter(r.Stderr, &stderrBuf)
	}

	logger.Debug("running command", "cmd", line, "dir", opts.Dir)
	err := cmd.Run()

	result := &Result{
		Command: line,
		Stdout:  stdoutBuf.String(),
		Stderr:  stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			result.ExitCode = exitErr.ExitCode()
			logger.Debug("command finished", "cmd", line, "exit_code", result.ExitCode, "stderr", lastLine(result.Stderr))
			return result, nil
		}
		if ctx.Err() != nil {
			return result, fmt.Errorf("running %s: %w", line, ctx.Err())
		}
		return result, fmt.Errorf("running %s: %w", line, err)
	}

	logger.Debug("command finished", "cmd", line, "exit_code", 0)
	return result, nil
}

// overlayEnv sets each key in extra on env, replacing existing entries.
// Keys are applied in sorted order so the result is deterministic.
func overlayEnv(env []string, extra map[string]string) []string {
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = setEnv(env, k, extra[k])
	}
	return env
}

// setEnv sets or replaces an environment variable in the env slice.
func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, e := range env {
		if len(e) >= len(prefix) && envKeyEqual(e[:len(prefix)], prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
