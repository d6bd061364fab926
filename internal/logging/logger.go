// Package logging provides a logging abstraction layer that decouples the
// engine from specific logging frameworks. Components accept a Logger in
// their constructors and fall back to the package default when given nil.
package logging

import "sync"

// Logger defines the interface for structured logging throughout the application.
// Implementations should provide structured logging with support for fields and error context.
type Logger interface {
	// Debug logs a debug-level message with optional fields
	Debug(msg string, fields ...Field)

	// Info logs an info-level message with optional fields
	Info(msg string, fields ...Field)

	// Warn logs a warning-level message with optional fields
	Warn(msg string, fields ...Field)

	// Error logs an error-level message with optional fields
	Error(msg string, fields ...Field)

	// WithError returns a new logger with an error field attached
	WithError(err error) Logger

	// WithField returns a new logger with a single field attached
	WithField(key string, value interface{}) Logger

	// WithFields returns a new logger with multiple fields attached
	WithFields(fields ...Field) Logger
}

// Field represents a key-value pair for structured logging.
// Fields provide context to log messages without cluttering the message text.
type Field struct {
	Key   string
	Value interface{}
}

// Standardized field names for structured logging. These constants keep the
// engine's log output consistent and easy to filter.
const (
	FieldComponent = "component"
	FieldCategory  = "category"
	FieldStrategy  = "strategy"
	FieldKeyword   = "keyword"
	FieldCount     = "count"
	FieldMonth     = "month"
	FieldFile      = "file_path"
	FieldScore     = "score"
)

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger
)

// GetLogger returns the process-wide default logger, creating a text-format
// logrus adapter at info level on first use.
func GetLogger() Logger {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()
	if l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewLogrusAdapter("info", "text")
	}
	return defaultLogger
}

// SetLogger replaces the process-wide default logger. Passing nil is a no-op.
func SetLogger(logger Logger) {
	if logger == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
}
