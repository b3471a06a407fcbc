package logging

import (
	"log/slog"
	"os"
)

// StdoutHandler writes JSON records to stdout. Development builds log at
// debug level.
func StdoutHandler(appEnv string) slog.Handler {
	level := slog.LevelInfo
	if appEnv == "development" {
		level = slog.LevelDebug
	}
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
}

// Setup installs the stdout handler as the default logger.
func Setup(appEnv string) {
	slog.SetDefault(slog.New(StdoutHandler(appEnv)))
}
