package helpers

import "sync"

// LogEntry is one captured log call
type LogEntry struct {
	Level    string
	Message  string
	Metadata map[string]interface{}
}

// MockLogger captures log calls for assertions
type MockLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewMockLogger creates an empty capturing logger
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

// Log records the call
func (l *MockLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: message, Metadata: metadata})
}

// Entries returns the captured calls at level, or every call when level is empty
func (l *MockLogger) Entries(level string) []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var result []LogEntry
	for _, entry := range l.entries {
		if level == "" || entry.Level == level {
			result = append(result, entry)
		}
	}
	return result
}
