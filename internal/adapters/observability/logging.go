package observability

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog Logger writing to stdout.
// APP_ENV=dev (or development) uses a human-friendly console writer.
func NewLogger(env string) zerolog.Logger {
	return newLogger(os.Stdout, env)
}

func newLogger(w io.Writer, env string) zerolog.Logger {
	if env == "dev" || env == "development" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Logger().Level(levelFor(env))
}

// levelFor keeps debug output (field edits, stale insights) out of production logs.
func levelFor(env string) zerolog.Level {
	switch env {
	case "dev", "development", "test":
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}
