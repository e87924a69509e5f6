package fsbuild

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/pystarter/pystarter/internal/logging"
)

// Permission constants for scaffolded content.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

// Builder writes directories and files relative to Root.
type Builder struct {
	Root   string
	Logger *slog.Logger
}

// New returns a Builder rooted at root.
func New(root string, logger *slog.Logger) *Builder {
	return &Builder{Root: root, Logger: logger}
}

// Path resolves rel against the builder's root.
func (b *Builder) Path(rel string) (string, error) {
	p, err := securejoin.SecureJoin(b.Root, rel)
	if err != nil {
		return "", fmt.Errorf("resolving %s under %s: %w", rel, b.Root, err)
	}
	return p, nil
}

// CreateDir creates rel and any missing parents. An existing directory is not
// an error: it is logged as a warning and created is false. Any other failure,
// including rel existing as a regular file, is returned.
func (b *Builder) CreateDir(rel string) (created bool, err error) {
	logger := logging.Or(b.Logger)

	path, err := b.Path(rel)
	if err != nil {
		return false, err
	}

	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		logger.Warn("directory already exists", "path", path)
		return false, nil
	case err == nil:
		return false, fmt.Errorf("creating directory %s: %w (not a directory)", path, fs.ErrExist)
	case !os.IsNotExist(err):
		return false, fmt.Errorf("creating directory %s: %w", path, err)
	}

	if err := os.MkdirAll(path, DirPerm); err != nil {
		return false, fmt.Errorf("creating directory %s: %w", path, err)
	}
	logger.Info("directory created", "path", path)
	return true, nil
}

// WriteFile writes content to rel, truncating any existing file. Content is
// written byte for byte, so UTF-8 strings are stored as UTF-8.
func (b *Builder) WriteFile(rel, content string) error {
	path, err := b.Path(rel)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FilePerm)
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}

	logging.Or(b.Logger).Info("file created", "path", path)
	return nil
}
