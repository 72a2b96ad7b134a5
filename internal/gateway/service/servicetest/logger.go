// Package servicetest provides doubles for the gateway service layer.
package servicetest

import (
	"context"
	"sync"
)

// Entry is one recorded log call.
type Entry struct {
	Level     string
	Operation string
	Message   string
	Err       error
	Attrs     map[string]any
}

// RecordingLogger keeps every log call in memory. Safe for concurrent use.
type RecordingLogger struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *RecordingLogger) LogInfo(_ context.Context, operation, message string, attrs ...any) {
	r.add(Entry{Level: "info", Operation: operation, Message: message, Attrs: toMap(attrs)})
}

func (r *RecordingLogger) LogWarn(_ context.Context, operation, message string, attrs ...any) {
	r.add(Entry{Level: "warn", Operation: operation, Message: message, Attrs: toMap(attrs)})
}

func (r *RecordingLogger) LogError(_ context.Context, operation string, err error, attrs ...any) {
	r.add(Entry{Level: "error", Operation: operation, Err: err, Attrs: toMap(attrs)})
}

// Entries returns a snapshot of everything logged so far.
func (r *RecordingLogger) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}

// Find returns the first entry with the given level and message.
func (r *RecordingLogger) Find(level, message string) (Entry, bool) {
	for _, e := range r.Entries() {
		if e.Level == level && e.Message == message {
			return e, true
		}
	}
	return Entry{}, false
}

// Errors returns only the error entries.
func (r *RecordingLogger) Errors() []Entry {
	var out []Entry
	for _, e := range r.Entries() {
		if e.Level == "error" {
			out = append(out, e)
		}
	}
	return out
}

func (r *RecordingLogger) add(e Entry) {
	r.mu.Lock()
	r.entries = append(r.entries, e)
	r.mu.Unlock()
}

func toMap(attrs []any) map[string]any {
	m := make(map[string]any, len(attrs)/2)
	for i := 0; i+1 < len(attrs); i += 2 {
		if k, ok := attrs[i].(string); ok {
			m[k] = attrs[i+1]
		}
	}
	return m
}
