package traittab

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with traittab-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithTable adds the table name to the logger.
func (l *Logger) WithTable(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("table", name),
	}
}

// LogMalformedRow logs a data line that could not be split into a name and
// a value remainder. The raw line is included so the offending input can be
// located.
func (l *Logger) LogMalformedRow(table string, raw string) {
	l.Warn("malformed row skipped",
		"table", table,
		"raw", raw,
	)
}

// LogRowSkipped logs a row abandoned because of a row-level error, such as a
// duplicate header name or an over-wide row.
func (l *Logger) LogRowSkipped(table string, entry string, err error) {
	l.Warn("row skipped",
		"table", table,
		"entry", entry,
		"error", err,
	)
}

// LogMissingTrait logs the NA substitution performed when an entry lacks a
// requested trait during serialization.
func (l *Logger) LogMissingTrait(entry string, trait string) {
	l.Warn("entry missing trait, writing sentinel",
		"entry", entry,
		"trait", trait,
		"sentinel", NA,
	)
}

// LogPass logs the completion of one iteration pass.
func (l *Logger) LogPass(table string, entries int, skipped int) {
	if skipped > 0 {
		l.Info("table pass completed with skipped rows",
			"table", table,
			"entries", entries,
			"skipped", skipped,
		)
	} else {
		l.Debug("table pass completed",
			"table", table,
			"entries", entries,
		)
	}
}
