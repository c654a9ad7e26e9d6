package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Options selects and tunes a Logger backend.
//
//	Format "text"    → slog text handler
//	Format "json"    → zerolog JSON
//	Format "console" → zerolog console writer
type Options struct {
	Level  string
	Format string
	Output io.Writer
}

// New builds a Logger from opts. Unknown formats fall back to "console".
func New(opts Options) Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	switch strings.ToLower(opts.Format) {
	case "text":
		h := slog.NewTextHandler(out, &slog.HandlerOptions{Level: slogLevel(opts.Level)})
		return NewSlogLogger(slog.New(h))
	case "json":
		return NewZerologLogger(zerolog.New(out).Level(zerologLevel(opts.Level)).With().Timestamp().Logger())
	default:
		w := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		return NewZerologLogger(zerolog.New(w).Level(zerologLevel(opts.Level)).With().Timestamp().Logger())
	}
}

func zerologLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func slogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Nop discards everything. Handy as a default for optional loggers.
func Nop() Logger {
	return NewZerologLogger(zerolog.Nop())
}
