package search

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with search-specific helpers so every component
// logs with the same field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
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

// NewJSONLogger creates a Logger that writes JSON records to w.
func NewJSONLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that writes human-readable records to w.
func NewTextLogger(w io.Writer, level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// LogDecode logs the outcome of loading and decoding a positions source.
func (l *Logger) LogDecode(ctx context.Context, uri string, size, records int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "decode failed",
			"source", uri,
			"bytes", size,
			"error", err,
		)
		return
	}
	if size == 0 {
		l.WarnContext(ctx, "source is empty or missing",
			"source", uri,
		)
		return
	}
	l.InfoContext(ctx, "decode completed",
		"source", uri,
		"bytes", size,
		"records", records,
		"elapsed", elapsed,
	)
}

// LogQuery logs a single nearest query.
func (l *Logger) LogQuery(ctx context.Context, r Result, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed",
			"x", r.Query.X,
			"y", r.Query.Y,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "query completed",
		"x", r.Query.X,
		"y", r.Query.Y,
		"registration", r.Record.Registration,
		"distance", r.Distance,
	)
}

// LogRun logs a completed batch of queries.
func (l *Logger) LogRun(ctx context.Context, queries, records int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"queries", queries,
			"records", records,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "search completed",
		"queries", queries,
		"records", records,
		"elapsed", elapsed,
	)
}
