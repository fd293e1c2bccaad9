package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/andrescamacho/colonybot/internal/infrastructure/config"
)

// Logger adapts slog to the application's CycleLogger
type Logger struct {
	slog   *slog.Logger
	closer io.Closer
}

// NewLogger builds a logger from the logging section
func NewLogger(cfg config.LoggingConfig) (*Logger, error) {
	out, closer, err := openOutput(cfg)
	if err != nil {
		return nil, err
	}
	return NewLoggerTo(out, cfg.Format, cfg.Level, closer), nil
}

// NewLoggerTo writes to w; closer may be nil
func NewLoggerTo(w io.Writer, format, level string, closer io.Closer) *Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var handler slog.Handler
	if format == "text" {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return &Logger{slog: slog.New(handler), closer: closer}
}

// Log writes one entry. Metadata keys are emitted in sorted order.
func (l *Logger) Log(level, message string, metadata map[string]interface{}) {
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, metadata[k]))
	}

	l.slog.LogAttrs(context.Background(), parseLevel(level), message, attrs...)
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func openOutput(cfg config.LoggingConfig) (io.Writer, io.Closer, error) {
	switch cfg.Output {
	case "stderr":
		return os.Stderr, nil, nil
	case "file":
		f, err := os.OpenFile(cfg.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		return f, f, nil
	default:
		return os.Stdout, nil, nil
	}
}

// parseLevel accepts both config names (warn) and application names (WARNING)
func parseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
