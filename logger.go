package graphbatch

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with graphbatch-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithNumSeeds adds a seed-count field to the logger.
func (l *Logger) WithNumSeeds(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("num_seeds", n),
	}
}

// WithFeature adds the (domain, type, name) feature key to the logger.
func (l *Logger) WithFeature(domain, typeName, name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("domain", domain, "type", typeName, "feature", name),
	}
}

// LogCompact logs a unique-and-compact operation.
func (l *Logger) LogCompact(ctx context.Context, numSeeds, numIndices, numUnique int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "compaction failed",
			"num_seeds", numSeeds,
			"num_indices", numIndices,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "compaction completed",
			"num_seeds", numSeeds,
			"num_indices", numIndices,
			"num_unique", numUnique,
		)
	}
}

// LogFetch logs a dataset artifact fetch.
func (l *Logger) LogFetch(ctx context.Context, name string, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "artifact fetch failed",
			"artifact", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "artifact fetched",
			"artifact", name,
			"bytes", bytes,
		)
	}
}
