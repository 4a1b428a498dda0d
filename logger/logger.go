// Package logger holds the process-wide structured logger.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

var Log *slog.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))

// Init initializes the global slog logger. Level and sink are taken from
// KEEPSAKE_LOG_LEVEL and KEEPSAKE_LOG_SINK (e.g. "file:/path/to/log").
// The TUI owns the terminal, so the default sink is a file in the data
// directory rather than stderr.
func Init(dataDir string) {
	lvl := strings.ToLower(strings.TrimSpace(os.Getenv("KEEPSAKE_LOG_LEVEL")))
	var level slog.Level
	switch lvl {
	case "debug":
		level = slog.LevelDebug
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	sink := os.Getenv("KEEPSAKE_LOG_SINK")
	path := ""
	switch {
	case strings.HasPrefix(sink, "file:"):
		path = strings.TrimPrefix(sink, "file:")
	case sink == "stderr":
		Log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return
	case dataDir != "":
		path = dataDir + "/keepsake.log"
	}

	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640)
		if err == nil {
			Log = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
			return
		}
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", path, err)
	}
	Log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
