// Package logging configures the process-wide structured logger.
package logging

import (
	"os"
	"strings"

	"github.com/phuslu/log"
)

// Setup configures log.DefaultLogger with the given level and output format.
// Format "console" produces human-readable output; anything else writes JSON lines to stdout.
// Unknown levels fall back to info.
func Setup(level, format string) {
	logger := log.Logger{
		Level:      parseLevel(level),
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}

	if strings.EqualFold(format, "console") {
		logger.Writer = &log.ConsoleWriter{
			Writer:      os.Stdout,
			ColorOutput: true,
		}
	} else {
		logger.Writer = &log.IOWriter{Writer: os.Stdout}
	}

	log.DefaultLogger = logger

	if parseLevel(level) == log.InfoLevel && !strings.EqualFold(level, "info") {
		log.Warn().Str("configured_level", level).Msg("Invalid LOG_LEVEL specified, defaulting to info")
	}
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
