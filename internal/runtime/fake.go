package runtime

import (
	"context"
	"strings"
)

// Call records one invocation made through a Fake runner.
type Call struct {
	Name string
	Args []string
	Opts Options
}

// Line returns the call rendered as a shell-quoted command line.
func (c Call) Line() string {
	return CommandLine(c.Name, c.Args...)
}

// FakeResponse scripts the outcome of calls whose command line contains Match.
type FakeResponse struct {
	Match    string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
	// Hook runs before the response is returned, e.g. to create files the
	// real tool would have produced.
	Hook func(Call)
}

// Fake is an in-memory Runner for tests. Calls that match no response
// succeed with empty output.
type Fake struct {
	Responses []FakeResponse
	Calls     []Call
}

// Run records the call and returns the first matching scripted response.
func (f *Fake) Run(_ context.Context, name string, args []string, opts Options) (*Result, error) {
	call := Call{Name: name, Args: append([]string(nil), args...), Opts: opts}
	f.Calls = append(f.Calls, call)

	line := call.Line()
	for _, resp := range f.Responses {
		if !strings.Contains(line, resp.Match) {
			continue
		}
		if resp.Hook != nil {
			resp.Hook(call)
		}
		if resp.Err != nil {
			return nil, resp.Err
		}
		return &Result{Command: line, ExitCode: resp.ExitCode, Stdout: resp.Stdout, Stderr: resp.Stderr}, nil
	}
	return &Result{Command: line}, nil
}
