package cli

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger builds the CLI logger. The configured level is raised one step
// per -v (warn, info, debug, trace) and quiet limits output to errors.
func NewLogger(cfg LogConfig, verbose int, quiet bool, w io.Writer) zerolog.Logger {
	level := parseLevel(cfg.Level)
	if verbose > 0 {
		level -= zerolog.Level(verbose)
		if level < zerolog.TraceLevel {
			level = zerolog.TraceLevel
		}
	}
	if quiet {
		level = zerolog.ErrorLevel
	}

	out := w
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.TimeOnly,
		}
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// parseLevel converts a string level to zerolog.Level, defaulting to warn.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}
