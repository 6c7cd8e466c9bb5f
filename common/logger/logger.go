package logger

import (
	"log/slog"
	"os"
)

// CreateLogger builds the process-wide base logger. PROD gets JSON at info
// level, everything else human-readable text with debug enabled in DEV.
func CreateLogger(env string) *slog.Logger {
	var handler slog.Handler

	switch env {
	case "PROD":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	case "DEV":
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	}

	return slog.New(handler).With(slog.String("service", "findit-gateway"))
}
