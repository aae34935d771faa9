package infrastructure

import (
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"ehrqa/internal/config"
)

// NewLogger creates a slog logger from the logging configuration. Format
// "text" produces a human-readable handler; anything else produces JSON.
func NewLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Level),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler)
}

// NewRunID generates a unique identifier for one QA invocation. Run IDs
// appear in log records only, never in the report, so identical inputs
// still produce identical reports.
func NewRunID() string {
	return uuid.New().String()
}

// WithRunID returns a logger that stamps every record with the run ID.
func WithRunID(logger *slog.Logger, runID string) *slog.Logger {
	return logger.With(slog.String("run_id", runID))
}

// parseLogLevel converts a level string to slog.Level, defaulting to Info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
