// Package logging provides structured logging utilities using the standard library's log/slog package.
// It offers helper functions for creating loggers with consistent configuration and context propagation.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// ParseLevel maps a LOG_LEVEL value to a slog level.
// Supported levels: debug, info, warn, error
// Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
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

// New creates a logger writing to w. format is "json" or "text"; anything
// else selects text.
func New(w io.Writer, level, format string) *slog.Logger {
	logLevel := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level: logLevel,
		// Add source code location when debugging
		AddSource: logLevel <= slog.LevelDebug,
	}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// NewLogger creates a new structured logger with JSON output on stderr.
// The log level can be controlled via the LOG_LEVEL environment variable.
// Stdout is reserved for report tables.
func NewLogger() *slog.Logger {
	return New(os.Stderr, os.Getenv("LOG_LEVEL"), "json")
}

// NewTextLogger creates a new structured logger with human-readable text output on stderr.
func NewTextLogger() *slog.Logger {
	return New(os.Stderr, os.Getenv("LOG_LEVEL"), "text")
}

// WithInvocationID tags ctx with a fresh invocation id and stores a logger
// carrying it. Every log line of one report request shares the id.
func WithInvocationID(ctx context.Context, logger *slog.Logger) (context.Context, string) {
	id := uuid.NewString()
	ctx = context.WithValue(ctx, invocationIDContextKey, id)
	return WithLogger(ctx, logger.With("invocation_id", id)), id
}

// InvocationID returns the invocation id stored in ctx, or "".
func InvocationID(ctx context.Context) string {
	id, _ := ctx.Value(invocationIDContextKey).(string)
	return id
}

// WithFields returns a new logger with additional structured fields.
// Fields are provided as key-value pairs.
func WithFields(logger *slog.Logger, fields map[string]interface{}) *slog.Logger {
	args := make([]interface{}, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return logger.With(args...)
}

// FromContext retrieves the logger from the context, or returns the default logger if not found.
// This enables passing loggers through the application via context.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

type contextKey string

const (
	loggerContextKey       contextKey = "logger"
	invocationIDContextKey contextKey = "invocation_id"
)
