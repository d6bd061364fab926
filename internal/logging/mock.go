package logging

// MockLogger is a mock implementation of the Logger interface for testing.
// It captures log entries for verification in tests.
type MockLogger struct {
	Entries       []LogEntry
	pendingError  error
	pendingFields []Field
}

// LogEntry represents a single log entry captured by MockLogger.
type LogEntry struct {
	Level   string
	Message string
	Fields  []Field
	Error   error
}

// NewMockLogger creates an empty MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) record(level, msg string, fields []Field) {
	allFields := append(m.pendingFields, fields...)
	m.Entries = append(m.Entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  allFields,
		Error:   m.pendingError,
	})
}

// Debug logs a debug-level message with optional fields.
func (m *MockLogger) Debug(msg string, fields ...Field) { m.record("DEBUG", msg, fields) }

// Info logs an info-level message with optional fields.
func (m *MockLogger) Info(msg string, fields ...Field) { m.record("INFO", msg, fields) }

// Warn logs a warning-level message with optional fields.
func (m *MockLogger) Warn(msg string, fields ...Field) { m.record("WARN", msg, fields) }

// Error logs an error-level message with optional fields.
func (m *MockLogger) Error(msg string, fields ...Field) { m.record("ERROR", msg, fields) }

// WithError returns a new logger with an error field attached.
// The returned logger shares the entry slice so captured output stays visible
// on the root mock.
func (m *MockLogger) WithError(err error) Logger {
	return &childLogger{root: m.root(), pendingError: err, pendingFields: m.pendingFields}
}

// WithField returns a new logger with a single field attached.
func (m *MockLogger) WithField(key string, value interface{}) Logger {
	return m.WithFields(Field{Key: key, Value: value})
}

// WithFields returns a new logger with multiple fields attached.
func (m *MockLogger) WithFields(fields ...Field) Logger {
	allFields := append(append([]Field{}, m.pendingFields...), fields...)
	return &childLogger{root: m.root(), pendingError: m.pendingError, pendingFields: allFields}
}

func (m *MockLogger) root() *MockLogger { return m }

// GetEntries returns all captured log entries.
func (m *MockLogger) GetEntries() []LogEntry {
	return m.Entries
}

// GetEntriesByLevel returns all log entries of a specific level.
func (m *MockLogger) GetEntriesByLevel(level string) []LogEntry {
	var entries []LogEntry
	for _, entry := range m.Entries {
		if entry.Level == level {
			entries = append(entries, entry)
		}
	}
	return entries
}

// Clear removes all captured log entries.
func (m *MockLogger) Clear() {
	m.Entries = []LogEntry{}
}

// HasEntry checks if a log entry with the given level and message exists.
func (m *MockLogger) HasEntry(level, message string) bool {
	for _, entry := range m.Entries {
		if entry.Level == level && entry.Message == message {
			return true
		}
	}
	return false
}

// childLogger carries pending fields/errors and records into the root mock,
// so assertions against the root see every entry.
type childLogger struct {
	root          *MockLogger
	pendingError  error
	pendingFields []Field
}

func (c *childLogger) record(level, msg string, fields []Field) {
	allFields := append(append([]Field{}, c.pendingFields...), fields...)
	c.root.Entries = append(c.root.Entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  allFields,
		Error:   c.pendingError,
	})
}

func (c *childLogger) Debug(msg string, fields ...Field) { c.record("DEBUG", msg, fields) }
func (c *childLogger) Info(msg string, fields ...Field)  { c.record("INFO", msg, fields) }
func (c *childLogger) Warn(msg string, fields ...Field)  { c.record("WARN", msg, fields) }
func (c *childLogger) Error(msg string, fields ...Field) { c.record("ERROR", msg, fields) }

func (c *childLogger) WithError(err error) Logger {
	return &childLogger{root: c.root, pendingError: err, pendingFields: c.pendingFields}
}

func (c *childLogger) WithField(key string, value interface{}) Logger {
	return c.WithFields(Field{Key: key, Value: value})
}

func (c *childLogger) WithFields(fields ...Field) Logger {
	allFields := append(append([]Field{}, c.pendingFields...), fields...)
	return &childLogger{root: c.root, pendingError: c.pendingError, pendingFields: allFields}
}
