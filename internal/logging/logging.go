// Package logging constructs the application logger.
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New returns a timestamped zerolog logger writing to w.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// NewConsole returns a logger with human-readable console output, used by
// the CLI entry points.
func NewConsole() zerolog.Logger {
	return New(zerolog.ConsoleWriter{Out: os.Stderr})
}
