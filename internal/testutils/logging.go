package testutils

import "sync"

// TestingT is a minimal interface that matches the methods we need from testing.T
type TestingT interface {
	Errorf(format string, args ...any)
}

// FieldsToMap safely converts a slice of alternating key-value pairs to a map.
// It performs safe type assertions and handles malformed entries gracefully.
// This is commonly used in logging tests to validate structured log fields.
func FieldsToMap(t TestingT, fields []any) map[string]any {
	fieldsMap := make(map[string]any)

	for i := 0; i < len(fields); i += 2 {
		if i+1 >= len(fields) {
			t.Errorf("Malformed fields slice: missing value for key at index %d", i)
			continue
		}

		key, ok := fields[i].(string)
		if !ok {
			t.Errorf("Malformed fields slice: key at index %d is not a string, got %T", i, fields[i])
			continue
		}

		fieldsMap[key] = fields[i+1]
	}

	return fieldsMap
}

// LogEntry records a single call made to CaptureLogger
type LogEntry struct {
	Level   string
	Message string
	Fields  []any
}

// CaptureLogger implements logging.Logger and records every call for
// assertions in tests. Safe for concurrent use.
type CaptureLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewCaptureLogger creates a new capture logger
func NewCaptureLogger() *CaptureLogger {
	return &CaptureLogger{}
}

func (c *CaptureLogger) record(level, msg string, fields []any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, LogEntry{Level: level, Message: msg, Fields: fields})
}

func (c *CaptureLogger) Debug(msg string, fields ...any) { c.record("DEBUG", msg, fields) }
func (c *CaptureLogger) Info(msg string, fields ...any)  { c.record("INFO", msg, fields) }
func (c *CaptureLogger) Warn(msg string, fields ...any)  { c.record("WARN", msg, fields) }
func (c *CaptureLogger) Error(msg string, fields ...any) { c.record("ERROR", msg, fields) }

// Entries returns a copy of the recorded log entries
func (c *CaptureLogger) Entries() []LogEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]LogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// EntriesAtLevel returns the recorded entries matching the given level
func (c *CaptureLogger) EntriesAtLevel(level string) []LogEntry {
	var out []LogEntry
	for _, e := range c.Entries() {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

// Reset clears the recorded entries
func (c *CaptureLogger) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}
