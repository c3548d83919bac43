// Package observability provides context-carried structured logging for
// compilation runs.
package observability

import (
	"context"
	"log/slog"
)

// LogContext holds the identifiers attached to log lines within a run.
type LogContext struct {
	RunID string
	Item  string
	Rep   string
}

type logContextKeyType string

const logContextKey logContextKeyType = "log-context"

// WithRunID adds a compilation run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	lc := extractLogContext(ctx)
	lc.RunID = runID
	return context.WithValue(ctx, logContextKey, lc)
}

// WithItem adds an item identifier to the context.
func WithItem(ctx context.Context, identifier string) context.Context {
	lc := extractLogContext(ctx)
	lc.Item = identifier
	return context.WithValue(ctx, logContextKey, lc)
}

// WithRep adds a rep name to the context.
func WithRep(ctx context.Context, rep string) context.Context {
	lc := extractLogContext(ctx)
	lc.Rep = rep
	return context.WithValue(ctx, logContextKey, lc)
}

func extractLogContext(ctx context.Context) LogContext {
	if lc, ok := ctx.Value(logContextKey).(LogContext); ok {
		return lc
	}
	return LogContext{}
}

// GetContext returns the structured log context from the provided context.
func GetContext(ctx context.Context) LogContext {
	return extractLogContext(ctx)
}

func getLogAttrs(ctx context.Context) []slog.Attr {
	lc := extractLogContext(ctx)
	attrs := []slog.Attr{}

	if lc.RunID != "" {
		attrs = append(attrs, slog.String("run.id", lc.RunID))
	}
	if lc.Item != "" {
		attrs = append(attrs, slog.String("item", lc.Item))
	}
	if lc.Rep != "" {
		attrs = append(attrs, slog.String("rep", lc.Rep))
	}
	return attrs
}

// InfoContext logs an info message with context information.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelInfo, msg, append(getLogAttrs(ctx), attrs...)...)
}

// WarnContext logs a warning message with context information.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelWarn, msg, append(getLogAttrs(ctx), attrs...)...)
}

// ErrorContext logs an error message with context information.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelError, msg, append(getLogAttrs(ctx), attrs...)...)
}

// DebugContext logs a debug message with context information.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	slog.LogAttrs(ctx, slog.LevelDebug, msg, append(getLogAttrs(ctx), attrs...)...)
}
