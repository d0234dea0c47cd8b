// Package logging builds the process-wide slog logger. Handlers here must
// never receive credentials: callers log request metadata only, and the
// upstream apiKey header has no attribute spelling anywhere in the codebase.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Config holds the logger settings read from the environment.
type Config struct {
	// Level is the textual minimum level (debug, info, warn, error).
	Level string
	// Format selects the encoding, json by default with text as the
	// development alternative.
	Format string
	// AddSource toggles slog's source attribution.
	AddSource bool
}

// ParseLevel maps a textual level onto slog's scale. Unknown and empty
// values fall back to info rather than failing startup.
func ParseLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
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

// New builds a logger writing to w with the supplied configuration. A nil
// writer falls back to stdout.
func New(w io.Writer, cfg Config) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level), AddSource: cfg.AddSource}
	if strings.EqualFold(strings.TrimSpace(cfg.Format), "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
