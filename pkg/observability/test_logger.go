package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/theory-cloud/ssrstack/pkg/sanitization"
)

type testLoggerCore struct {
	mu      sync.Mutex
	entries []LogEntry

	entriesLogged  atomic.Int64
	flushCount     atomic.Int64
	lastFlushNanos atomic.Int64
}

// TestLogger is an in-memory logger for deterministic unit tests.
//
// Derived loggers (via With* calls) share the same underlying core.
type TestLogger struct {
	core *testLoggerCore

	fields map[string]any
	runID  string
	stage  string

	closed *atomic.Bool
}

var _ StructuredLogger = (*TestLogger)(nil)

func NewTestLogger() *TestLogger {
	return &TestLogger{
		core:   &testLoggerCore{},
		fields: map[string]any{},
		closed: &atomic.Bool{},
	}
}

func (l *TestLogger) Entries() []LogEntry {
	if l == nil || l.core == nil {
		return nil
	}
	l.core.mu.Lock()
	defer l.core.mu.Unlock()
	out := make([]LogEntry, len(l.core.entries))
	copy(out, l.core.entries)
	return out
}

func (l *TestLogger) Debug(message string, fields ...map[string]any) {
	l.log("debug", message, fields...)
}
func (l *TestLogger) Info(message string, fields ...map[string]any) {
	l.log("info", message, fields...)
}
func (l *TestLogger) Warn(message string, fields ...map[string]any) {
	l.log("warn", message, fields...)
}
func (l *TestLogger) Error(message string, fields ...map[string]any) {
	l.log("error", message, fields...)
}

func (l *TestLogger) WithField(key string, value any) StructuredLogger {
	return l.WithFields(map[string]any{key: value})
}

func (l *TestLogger) WithFields(fields map[string]any) StructuredLogger {
	next := l.clone()
	for k, v := range fields {
		next.fields[k] = v
	}
	return next
}

func (l *TestLogger) WithRunID(runID string) StructuredLogger {
	next := l.clone()
	next.runID = runID
	return next
}

func (l *TestLogger) WithStage(stage string) StructuredLogger {
	next := l.clone()
	next.stage = stage
	return next
}

func (l *TestLogger) Flush(ctx context.Context) error {
	if l == nil || l.core == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	l.core.flushCount.Add(1)
	l.core.lastFlushNanos.Store(time.Now().UnixNano())
	return nil
}

func (l *TestLogger) Close() error {
	if l == nil || l.closed == nil {
		return nil
	}
	l.closed.Store(true)
	return nil
}

func (l *TestLogger) IsHealthy() bool {
	return l != nil && l.core != nil && !l.closed.Load()
}

func (l *TestLogger) GetStats() LoggerStats {
	if l == nil || l.core == nil {
		return LoggerStats{}
	}
	return LoggerStats{
		LastFlush:     time.Unix(0, l.core.lastFlushNanos.Load()),
		EntriesLogged: l.core.entriesLogged.Load(),
		FlushCount:    l.core.flushCount.Load(),
	}
}

func (l *TestLogger) clone() *TestLogger {
	if l == nil {
		return NewTestLogger()
	}
	nextFields := make(map[string]any, len(l.fields))
	for k, v := range l.fields {
		nextFields[k] = v
	}
	return &TestLogger{
		core:   l.core,
		fields: nextFields,
		runID:  l.runID,
		stage:  l.stage,
		closed: l.closed,
	}
}

func (l *TestLogger) log(level string, message string, fields ...map[string]any) {
	if l == nil || l.core == nil || l.closed.Load() {
		return
	}

	sanitized := make(map[string]any, len(l.fields))
	for k, v := range l.fields {
		sanitized[k] = sanitization.SanitizeFieldValue(k, v)
	}
	for _, set := range fields {
		for k, v := range set {
			sanitized[k] = sanitization.SanitizeFieldValue(k, v)
		}
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   sanitization.SanitizeLogString(message),
		Fields:    sanitized,
		RunID:     l.runID,
		Stage:     l.stage,
	}

	l.core.entriesLogged.Add(1)

	l.core.mu.Lock()
	l.core.entries = append(l.core.entries, entry)
	l.core.mu.Unlock()
}
