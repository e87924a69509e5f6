// Package logging provides logging utilities for pystarter.
//
// Progress is reported through a package-level slog logger so every step of a
// scaffold run carries a timestamp, a level and structured attributes:
//
//	logging.Info("directory created", "path", path)
//	logging.Warn("directory already exists", "path", path)
//
// The logger writes to stderr, keeping stdout free for the run summary. Setup
// switches between the text and JSON handlers and raises the level to DEBUG in
// verbose mode.
package logging
