// Package logger installs the default slog logger. Import it for its
// side effect before anything logs.
//
// Logs go to stderr, leaving stdout to the terminal client's output.
package logger

import (
	"log/slog"
	"os"

	"go.opentelemetry.io/contrib/bridges/otelslog"
)

func init() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: getLogLevel(),
	})))
}

// UseOTel routes the default logger through the global OpenTelemetry
// logger provider. It must be called after the provider is installed.
func UseOTel(name string) {
	slog.SetDefault(otelslog.NewLogger(name))
}

func getLogLevel() slog.Level {
	levelStr := os.Getenv("LOG_LEVEL")
	switch levelStr {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo // Default to Info if not set or invalid
	}
}
