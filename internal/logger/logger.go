// Package logger constructs the structured logger used across components.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/tesseradb/tessera/internal/config"
)

// New creates a zerolog logger from the given configuration. Output defaults
// to stderr when w is nil.
func New(cfg config.LogConfig, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}

	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w}
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
