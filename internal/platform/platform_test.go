package platform

import (
	"bytes"
	"errors"
	"log/slog"
	goruntime "runtime"
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		family Family
		want   bool
	}{
		{"Linux", true},
		{"Windows", true},
		{"linux", false},
		{"windows", false},
		{"WINDOWS", false},
		{"Darwin", false},
		{"", false},
		{" Linux", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.family), func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			if got := Validate(logger, tt.family); got != tt.want {
				t.Errorf("Validate(%q) = %v, want %v", tt.family, got, tt.want)
			}

			wantLevel := "level=ERROR"
			if tt.want {
				wantLevel = "level=INFO"
			}
			if !strings.Contains(buf.String(), wantLevel) {
				t.Errorf("log output = %q, want it to contain %q", buf.String(), wantLevel)
			}
		})
	}
}

func TestScriptsDir(t *testing.T) {
	got, err := ScriptsDir(Windows)
	if err != nil || got != "Scripts" {
		t.Errorf("ScriptsDir(Windows) = %q, %v; want %q, nil", got, err, "Scripts")
	}

	got, err = ScriptsDir(Linux)
	if err != nil || got != "bin" {
		t.Errorf("ScriptsDir(Linux) = %q, %v; want %q, nil", got, err, "bin")
	}

	for _, f := range []Family{"Darwin", "linux", "", "FreeBSD"} {
		if _, err := ScriptsDir(f); !errors.Is(err, ErrUnsupportedOS) {
			t.Errorf("ScriptsDir(%q) error = %v, want ErrUnsupportedOS", f, err)
		}
	}
}

func TestFromGOOS(t *testing.T) {
	tests := []struct {
		goos string
		want Family
	}{
		{"linux", Linux},
		{"windows", Windows},
		{"darwin", "Darwin"},
		{"freebsd", "Freebsd"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FromGOOS(tt.goos); got != tt.want {
			t.Errorf("FromGOOS(%q) = %q, want %q", tt.goos, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	if got, want := Detect(), FromGOOS(goruntime.GOOS); got != want {
		t.Errorf("Detect() = %q, want %q", got, want)
	}
}

func TestExecutable(t *testing.T) {
	tests := []struct {
		family Family
		name   string
		want   string
	}{
		{Linux, "pip", "pip"},
		{Windows, "pip", "pip.exe"},
		{Windows, "python.exe", "python.exe"},
	}
	for _, tt := range tests {
		if got := Executable(tt.family, tt.name); got != tt.want {
			t.Errorf("Executable(%q, %q) = %q, want %q", tt.family, tt.name, got, tt.want)
		}
	}
}
