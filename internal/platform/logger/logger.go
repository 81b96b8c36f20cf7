package logger

import (
	"log/slog"
	"os"
)

// New returns a JSON slog logger writing to stdout. Verbose enables debug
// level output.
func New(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
