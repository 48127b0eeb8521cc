// Package logging configures the process-wide zerolog logger. Interactive
// runs write to a file so log lines never tear the terminal UI.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Open returns a logger writing JSON lines to path, creating parent
// directories as needed. An unwritable path degrades to a disabled
// logger rather than failing the program.
func Open(path string) (zerolog.Logger, func()) {
	if path == "" {
		return zerolog.Nop(), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}
	}
	log := zerolog.New(f).With().Timestamp().Logger()
	return log, func() { f.Close() }
}

// Console returns a human-readable logger for non-interactive commands.
func Console(w io.Writer) zerolog.Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	return zerolog.New(out).With().Timestamp().Logger()
}
