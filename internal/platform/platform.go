package platform

import (
	"errors"
	"fmt"
	"log/slog"
	goruntime "runtime"
	"strings"

	"github.com/pystarter/pystarter/internal/logging"
)

// Family is a host operating system family name as the host reports it
// ("Linux", "Windows", "Darwin", ...).
type Family string

// Supported families.
const (
	Linux   Family = "Linux"
	Windows Family = "Windows"
)

// ErrUnsupportedOS is returned for any family other than Linux and Windows.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// Scripts subdirectory names inside a virtual environment.
const (
	ScriptsDirWindows = "Scripts"
	ScriptsDirUnix    = "bin"
)

// Detect returns the family of the running host.
func Detect() Family {
	return FromGOOS(goruntime.GOOS)
}

// FromGOOS maps a Go GOOS value to a family name.
func FromGOOS(goos string) Family {
	switch goos {
	case "linux":
		return Linux
	case "windows":
		return Windows
	case "darwin":
		return "Darwin"
	case "":
		return ""
	default:
		return Family(strings.ToUpper(goos[:1]) + goos[1:])
	}
}

// Supported reports whether f is Linux or Windows. The comparison is exact:
// "linux" is not a supported family.
func (f Family) Supported() bool {
	return f == Linux || f == Windows
}

// Validate reports whether f is supported and logs the outcome.
func Validate(logger *slog.Logger, f Family) bool {
	logger = logging.Or(logger)
	if f.Supported() {
		logger.Info("supported operating system", "os", string(f))
		return true
	}
	logger.Error("unsupported operating system", "os", string(f))
	return false
}

// ScriptsDir returns the subdirectory holding executables inside a virtual
// environment: "Scripts" on Windows, "bin" on Linux.
func ScriptsDir(f Family) (string, error) {
	switch f {
	case Windows:
		return ScriptsDirWindows, nil
	case Linux:
		return ScriptsDirUnix, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedOS, string(f))
	}
}

// Executable returns the file name of an executable on f, adding the .exe
// suffix on Windows.
func Executable(f Family, name string) string {
	if f == Windows && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		return name + ".exe"
	}
	return name
}
