// Package logging provides structured logging utilities with context propagation.
//
// This package wraps the standard library's log/slog package with helper functions
// for common logging patterns used throughout the application.
//
// Key features:
//   - JSON and text output formats, always on stderr
//   - Invocation ID propagation
//   - Context-aware logging
//   - Configurable log levels
//
// Example usage:
//
//	import "world-report/internal/observability/logging"
//
//	func main() {
//	    logger := logging.NewTextLogger()
//	    logger.Info("application started", slog.String("version", "1.0"))
//	}
//
//	func runReport(ctx context.Context, logger *slog.Logger) {
//	    ctx, _ = logging.WithInvocationID(ctx, logger)
//	    logging.FromContext(ctx).Info("running report")
//	}
package logging
