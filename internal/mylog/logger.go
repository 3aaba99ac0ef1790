package mylog

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

type Logger = slog.Logger

func ToLogLevel(logLevel string) slog.Level {
	switch logLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func NewLogger(logLevel string, logHandler string) *Logger {
	return NewLoggerWithWriter(os.Stderr, logLevel, logHandler)
}

func NewLoggerWithWriter(w io.Writer, logLevel string, logHandler string) *Logger {
	slogLevel := ToLogLevel(logLevel)

	var handler slog.Handler
	switch logHandler {
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			AddSource: true,
			Level:     slogLevel,
		})
	default:
		handler = tint.NewHandler(w, &tint.Options{
			Level:      slogLevel,
			TimeFormat: time.Kitchen,
			NoColor:    w != os.Stderr && w != os.Stdout,
		})
	}

	return slog.New(handler)
}

// Discard returns a logger that drops every record. Used as the zero value for components built without a logger.
func Discard() *Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
