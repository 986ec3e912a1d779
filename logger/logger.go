// Package logger builds the zerolog loggers of the command line.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration.
type Config struct {
	Level  string // debug, info, warn, error
	Pretty bool   // human readable console output
}

// level parses the configured level, info when unknown.
func (c Config) level() zerolog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	}
	return zerolog.InfoLevel
}

// New creates a logger writing to stderr.
func New(cfg Config) zerolog.Logger { return NewWriter(os.Stderr, cfg) }

// NewWriter creates a logger writing to w.
func NewWriter(w io.Writer, cfg Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	if cfg.Pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}
	return zerolog.New(w).Level(cfg.level()).With().Timestamp().Logger()
}
