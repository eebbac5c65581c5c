package common

import (
	"context"
	"time"
)

// Logger is the logging port used by application code. The infrastructure
// layer provides a zap-backed implementation.
type Logger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Log levels understood by Logger implementations
const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARNING"
	LevelError = "ERROR"
)

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) Logger {
	if logger, ok := ctx.Value(loggerKey).(Logger); ok {
		return logger
	}
	return &noOpLogger{}
}

// noOpLogger is a logger that does nothing (fallback when no logger in context)
type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {
	// Do nothing
}

// LoggingMiddleware logs every request with its duration at debug level and
// failures at error level
func LoggingMiddleware() Middleware {
	return func(ctx context.Context, request Request, next HandlerFunc) (Response, error) {
		logger := LoggerFromContext(ctx)
		name := RequestName(request)
		start := time.Now()

		response, err := next(ctx, request)

		metadata := map[string]interface{}{
			"request":     name,
			"duration_ms": time.Since(start).Milliseconds(),
		}
		if err != nil {
			metadata["error"] = err.Error()
			logger.Log(LevelError, "request failed", metadata)
			return response, err
		}
		logger.Log(LevelDebug, "request handled", metadata)
		return response, nil
	}
}
