package common

import "context"

// CycleLogger provides logging for the economy and spawning passes
type CycleLogger interface {
	Log(level, message string, metadata map[string]interface{})
}

// Context keys for passing logger through context
type contextKey int

const (
	loggerKey contextKey = iota
)

// WithLogger adds a logger to the context
func WithLogger(ctx context.Context, logger CycleLogger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext extracts the logger from context, or returns a no-op logger if not found
func LoggerFromContext(ctx context.Context) CycleLogger {
	if logger, ok := ctx.Value(loggerKey).(CycleLogger); ok {
		return logger
	}
	return &noOpLogger{}
}

// WithFields returns a logger that adds fields to every entry. Entry metadata
// wins over fields on key collisions.
func WithFields(logger CycleLogger, fields map[string]interface{}) CycleLogger {
	return &fieldLogger{inner: logger, fields: fields}
}

type fieldLogger struct {
	inner  CycleLogger
	fields map[string]interface{}
}

func (l *fieldLogger) Log(level, message string, metadata map[string]interface{}) {
	merged := make(map[string]interface{}, len(l.fields)+len(metadata))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range metadata {
		merged[k] = v
	}
	l.inner.Log(level, message, merged)
}

// noOpLogger is a logger that does nothing (fallback when no logger in context)
type noOpLogger struct{}

func (l *noOpLogger) Log(level, message string, metadata map[string]interface{}) {
	// Do nothing
}
