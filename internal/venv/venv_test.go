package venv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pystarter/pystarter/internal/fsbuild"
	"github.com/pystarter/pystarter/internal/logging"
	"github.com/pystarter/pystarter/internal/platform"
	"github.com/pystarter/pystarter/internal/runtime"
)

func TestNewEnvironment(t *testing.T) {
	root := filepath.Join("tmp", "demo")

	env, err := NewEnvironment(root, "venv", platform.Linux)
	if err != nil {
		t.Fatalf("NewEnvironment() error: %v", err)
	}
	if env.ScriptsDir != "bin" {
		t.Errorf("ScriptsDir = %q, want %q", env.ScriptsDir, "bin")
	}
	if want := filepath.Join(root, "venv", "bin", "pip"); env.Pip() != want {
		t.Errorf("Pip() = %q, want %q", env.Pip(), want)
	}
	if want := filepath.Join(root, "venv", "bin", "activate"); env.ActivationScript() != want {
		t.Errorf("ActivationScript() = %q, want %q", env.ActivationScript(), want)
	}

	win, err := NewEnvironment(root, "venv", platform.Windows)
	if err != nil {
		t.Fatalf("NewEnvironment(Windows) error: %v", err)
	}
	if want := filepath.Join(root, "venv", "Scripts", "python.exe"); win.Python() != want {
		t.Errorf("Python() = %q, want %q", win.Python(), want)
	}
	if want := filepath.Join(root, "venv", "Scripts", "activate"); win.ActivationScript() != want {
		t.Errorf("ActivationScript() = %q, want %q", win.ActivationScript(), want)
	}

	if _, err := NewEnvironment(root, "venv", "Darwin"); !errors.Is(err, platform.ErrUnsupportedOS) {
		t.Errorf("NewEnvironment(Darwin) error = %v, want ErrUnsupportedOS", err)
	}
}

func TestEnvironmentVars(t *testing.T) {
	t.Setenv("PATH", "/usr/bin")
	env, _ := NewEnvironment("/work/demo", "venv", platform.Linux)

	vars := env.Vars()
	if vars["VIRTUAL_ENV"] != env.Dir {
		t.Errorf("VIRTUAL_ENV = %q, want %q", vars["VIRTUAL_ENV"], env.Dir)
	}
	scripts := filepath.Join(env.Dir, "bin")
	if !strings.HasPrefix(vars["PATH"], scripts) || !strings.HasSuffix(vars["PATH"], "/usr/bin") {
		t.Errorf("PATH = %q, want scripts dir prepended", vars["PATH"])
	}
}

func TestGitignorePattern(t *testing.T) {
	if got := GitignorePattern("venv"); got != "venv/*" {
		t.Errorf("GitignorePattern() = %q, want %q", got, "venv/*")
	}
}

func TestProvisionerCreate(t *testing.T) {
	root := t.TempDir()
	fake := &runtime.Fake{}
	p := &Provisioner{
		Runner:      fake,
		Interpreter: "python3",
		Family:      platform.Linux,
		Root:        root,
		Logger:      logging.Discard(),
	}

	env, err := p.Create(context.Background(), "venv")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if env.Dir != filepath.Join(root, "venv") {
		t.Errorf("Dir = %q", env.Dir)
	}

	if len(fake.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(fake.Calls))
	}
	call := fake.Calls[0]
	if call.Line() != "python3 -m venv venv" {
		t.Errorf("command = %q, want %q", call.Line(), "python3 -m venv venv")
	}
	if call.Opts.Dir != root {
		t.Errorf("Dir = %q, want %q", call.Opts.Dir, root)
	}
}

func TestProvisionerInterpreterWithArgs(t *testing.T) {
	fake := &runtime.Fake{}
	p := &Provisioner{Runner: fake, Interpreter: "py -3", Family: platform.Windows, Root: t.TempDir(), Logger: logging.Discard()}

	if _, err := p.Create(context.Background(), ""); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if got := fake.Calls[0].Line(); got != "py -3 -m venv venv" {
		t.Errorf("command = %q, want %q", got, "py -3 -m venv venv")
	}
}

func TestProvisionerNonZeroExit(t *testing.T) {
	fake := &runtime.Fake{Responses: []runtime.FakeResponse{{Match: "-m venv", ExitCode: 1, Stderr: "Error: ensurepip is not available"}}}

	strict := &Provisioner{Runner: fake, Family: platform.Linux, Root: t.TempDir(), Logger: logging.Discard()}
	_, err := strict.Create(context.Background(), "venv")
	if !runtime.IsExitError(err) {
		t.Fatalf("Create() error = %v, want ExitError", err)
	}

	var seen []*runtime.Result
	lenient := &Provisioner{
		Runner: fake, Family: platform.Linux, Root: t.TempDir(), Logger: logging.Discard(),
		Check: func(r *runtime.Result) error { seen = append(seen, r); return nil },
	}
	if _, err := lenient.Create(context.Background(), "venv"); err != nil {
		t.Fatalf("Create() with lenient policy error = %v", err)
	}
	if len(seen) != 1 || seen[0].ExitCode != 1 {
		t.Errorf("policy saw %+v", seen)
	}
}

func TestProvisionerUnsupportedOS(t *testing.T) {
	fake := &runtime.Fake{}
	p := &Provisioner{Runner: fake, Family: "Darwin", Root: t.TempDir(), Logger: logging.Discard()}

	if _, err := p.Create(context.Background(), "venv"); !errors.Is(err, platform.ErrUnsupportedOS) {
		t.Errorf("Create() error = %v, want ErrUnsupportedOS", err)
	}
	if len(fake.Calls) != 0 {
		t.Errorf("expected no commands, got %d", len(fake.Calls))
	}
}

func newTestInstaller(t *testing.T, fake *runtime.Fake) *Installer {
	t.Helper()
	root := t.TempDir()
	env, err := NewEnvironment(root, "venv", platform.Linux)
	if err != nil {
		t.Fatal(err)
	}
	return &Installer{
		Runner: fake,
		Env:    env,
		Files:  fsbuild.New(root, logging.Discard()),
		Logger: logging.Discard(),
	}
}

func TestInstallDefaults(t *testing.T) {
	fake := &runtime.Fake{}
	inst := newTestInstaller(t, fake)

	if err := inst.InstallDefaults(context.Background(), DefaultPackages); err != nil {
		t.Fatalf("InstallDefaults() error: %v", err)
	}

	if len(fake.Calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(fake.Calls))
	}

	upgrade := fake.Calls[0]
	if upgrade.Name != inst.Env.Python() {
		t.Errorf("upgrade binary = %q, want %q", upgrade.Name, inst.Env.Python())
	}
	if got := strings.Join(upgrade.Args, " "); got != "-m pip install --upgrade pip" {
		t.Errorf("upgrade args = %q", got)
	}

	install := fake.Calls[1]
	if install.Name != inst.Env.Pip() {
		t.Errorf("install binary = %q, want %q", install.Name, inst.Env.Pip())
	}
	if got := strings.Join(install.Args, " "); got != "install pandas pytest" {
		t.Errorf("install args = %q", got)
	}
	if install.Opts.Env["VIRTUAL_ENV"] != inst.Env.Dir {
		t.Errorf("VIRTUAL_ENV = %q, want %q", install.Opts.Env["VIRTUAL_ENV"], inst.Env.Dir)
	}
}

func TestInstallDefaultsStopsOnFailure(t *testing.T) {
	fake := &runtime.Fake{Responses: []runtime.FakeResponse{{Match: "--upgrade pip", ExitCode: 2}}}
	inst := newTestInstaller(t, fake)

	err := inst.InstallDefaults(context.Background(), DefaultPackages)
	if !runtime.IsExitError(err) {
		t.Fatalf("InstallDefaults() error = %v, want ExitError", err)
	}
	if len(fake.Calls) != 1 {
		t.Errorf("expected install to be skipped after failed upgrade, got %d calls", len(fake.Calls))
	}
}

func TestInstallEmpty(t *testing.T) {
	fake := &runtime.Fake{}
	inst := newTestInstaller(t, fake)

	if err := inst.Install(context.Background(), nil); err != nil {
		t.Fatalf("Install(nil) error: %v", err)
	}
	if len(fake.Calls) != 0 {
		t.Errorf("expected no calls, got %d", len(fake.Calls))
	}
}

func TestExportManifest(t *testing.T) {
	freeze := "numpy==2.1.0\npandas==2.2.3\npytest==8.3.3\n"
	fake := &runtime.Fake{Responses: []runtime.FakeResponse{{Match: "freeze", Stdout: freeze}}}
	inst := newTestInstaller(t, fake)

	path := filepath.Join(inst.Files.Root, "requirements.txt")
	if err := os.WriteFile(path, []byte("stale contents that are longer than the new ones and more"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := inst.ExportManifest(context.Background(), ""); err != nil {
		t.Fatalf("ExportManifest() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != freeze {
		t.Errorf("manifest = %q, want %q", string(data), freeze)
	}
	if got := fake.Calls[0].Line(); !strings.HasSuffix(got, "pip freeze") {
		t.Errorf("command = %q, want pip freeze", got)
	}
}

func TestParsePythonVersion(t *testing.T) {
	tests := []struct {
		output  string
		want    string
		wantErr bool
	}{
		{"Python 3.12.1\n", "3.12.1", false},
		{"Python 3.13.0rc1", "3.13.0", false},
		{"Python 2.7.18", "2.7.18", false},
		{"Python 3.10", "3.10.0", false},
		{"command not found", "", true},
	}
	for _, tt := range tests {
		v, err := ParsePythonVersion(tt.output)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePythonVersion(%q) error = %v, wantErr %v", tt.output, err, tt.wantErr)
			continue
		}
		if err == nil && v.String() != tt.want {
			t.Errorf("ParsePythonVersion(%q) = %s, want %s", tt.output, v, tt.want)
		}
	}
}

func TestProbeInterpreter(t *testing.T) {
	fake := &runtime.Fake{Responses: []runtime.FakeResponse{{Match: "--version", Stdout: "Python 3.11.4\n"}}}

	interp, err := ProbeInterpreter(context.Background(), fake, "python3")
	if err != nil {
		t.Fatalf("ProbeInterpreter() error: %v", err)
	}
	if interp.Version.String() != "3.11.4" {
		t.Errorf("Version = %s, want 3.11.4", interp.Version)
	}
}

func TestProbeInterpreterTooOld(t *testing.T) {
	fake := &runtime.Fake{Responses: []runtime.FakeResponse{{Match: "--version", Stderr: "Python 2.7.18\n"}}}

	_, err := ProbeInterpreter(context.Background(), fake, "python")
	if err == nil || !strings.Contains(err.Error(), "venv module needs Python") {
		t.Errorf("ProbeInterpreter() error = %v, want version error", err)
	}
}

func TestProbeInterpreterMissing(t *testing.T) {
	fake := &runtime.Fake{Responses: []runtime.FakeResponse{{Match: "--version", Err: errors.New("exec: \"python\": executable file not found in $PATH")}}}

	if _, err := ProbeInterpreter(context.Background(), fake, "python"); err == nil {
		t.Error("expected error for missing interpreter")
	}
}
