package search

import (
	"os"

	"github.com/rs/zerolog"
)

// log is the package logger. Level comes from BETTERFINDER_LOG
// (trace/debug/info/warn/error); default is warn so the walker's
// per-directory noise stays out of normal runs.
var log = newLogger()

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if v := os.Getenv("BETTERFINDER_LOG"); v != "" {
		if parsed, err := zerolog.ParseLevel(v); err == nil {
			level = parsed
		}
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Str("component", "search").Logger()
}
