package config

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// NewLogger creates the root logger for an entry point. The level comes from
// LOG_LEVEL (debug, info, warn, error) and defaults to info.
func NewLogger(prefix string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          prefix,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})

	level, err := log.ParseLevel(GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		logger.Warn("unknown LOG_LEVEL, using info", "err", err)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
