package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/pystarter/pystarter/internal/branding"
	"github.com/pystarter/pystarter/internal/venv"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyInterpreter  = "interpreter"
	KeyEnvName      = "env_name"
	KeyPackages     = "packages"
	KeyManifestFile = "manifest_file"
	KeyKeepGoing    = "keep_going"
	KeyLogFormat    = "log_format"
)

var knownKeys = map[string]bool{
	KeyInterpreter:  true,
	KeyEnvName:      true,
	KeyPackages:     true,
	KeyManifestFile: true,
	KeyKeepGoing:    true,
	KeyLogFormat:    true,
}

// Keys returns the supported setting keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(knownKeys))
	for k := range knownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Settings is the typed view of the configuration with defaults applied.
type Settings struct {
	Interpreter  string
	EnvName      string
	Packages     []string
	ManifestFile string
	KeepGoing    bool
	LogFormat    string
}

// Dir returns the path to the config directory. PYSTARTER_HOME overrides
// the default ~/.pystarter/.
func Dir() string {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// A missing config file is not an error.
func Load() error {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	if _, err := os.Stat(FilePath()); err != nil {
		return nil
	}
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return nil
}

// Get returns the effective value for key, falling back to its default.
// Unknown keys yield an empty string.
func Get(key string) string {
	s := Current()
	switch key {
	case KeyInterpreter:
		return s.Interpreter
	case KeyEnvName:
		return s.EnvName
	case KeyPackages:
		return strings.Join(s.Packages, ",")
	case KeyManifestFile:
		return s.ManifestFile
	case KeyKeepGoing:
		return strconv.FormatBool(s.KeepGoing)
	case KeyLogFormat:
		return s.LogFormat
	}
	return ""
}

// Set writes a config key-value pair and saves the config file. Values are
// converted to the key's type: keep_going is a boolean and packages a
// comma- or space-separated list.
func Set(key, value string) error {
	if !knownKeys[key] {
		return fmt.Errorf("unknown config key %q (supported: %s)", key, strings.Join(Keys(), ", "))
	}

	var typed any = value
	switch key {
	case KeyKeepGoing:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%s must be true or false, got %q", key, value)
		}
		typed = b
	case KeyPackages:
		typed = splitList(value)
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, typed)

	configFile := FilePath()
	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Current returns the loaded settings with defaults applied.
func Current() Settings {
	s := Settings{
		Interpreter:  stringOr(KeyInterpreter, venv.DefaultInterpreter),
		EnvName:      stringOr(KeyEnvName, venv.DefaultName),
		ManifestFile: stringOr(KeyManifestFile, venv.DefaultManifestFile),
		KeepGoing:    viper.GetBool(KeyKeepGoing),
		LogFormat:    stringOr(KeyLogFormat, "text"),
		Packages:     append([]string(nil), venv.DefaultPackages...),
	}
	if viper.IsSet(KeyPackages) {
		var pkgs []string
		for _, p := range viper.GetStringSlice(KeyPackages) {
			pkgs = append(pkgs, splitList(p)...)
		}
		s.Packages = pkgs
	}
	return s
}

func stringOr(key, def string) string {
	if v := strings.TrimSpace(viper.GetString(key)); v != "" {
		return v
	}
	return def
}

// splitList splits on commas and whitespace, dropping empty items.
func splitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	if fields == nil {
		return []string{}
	}
	return fields
}
