package zap

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	ubzap "go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/theory-cloud/ssrstack/pkg/observability"
)

type recordingNotifier struct {
	mu      sync.Mutex
	entries []observability.LogEntry
	err     error
	calls   int
}

func (n *recordingNotifier) Notify(_ context.Context, entry observability.LogEntry) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls++
	if n.err != nil {
		return n.err
	}
	n.entries = append(n.entries, entry)
	return nil
}

func (n *recordingNotifier) snapshot() ([]observability.LogEntry, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]observability.LogEntry, len(n.entries))
	copy(out, n.entries)
	return out, n.calls
}

func TestZapLogger_SanitizesMessageAndFields(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)

	logger, err := NewZapLogger(observability.LoggerConfig{}, WithZapLogger(ubzap.New(core)))
	require.NoError(t, err)

	logger.WithRunID("run-1").WithStage("staging").Info("synth\r\ndone", map[string]any{
		"aws_secret_access_key": "abc",
		"stack":                 "StagingTanStackStartRootStack\n",
	})

	entries := observed.All()
	require.Len(t, entries, 1)
	require.Equal(t, "synthdone", entries[0].Message)

	ctx := entries[0].ContextMap()
	require.Equal(t, "[REDACTED]", ctx["aws_secret_access_key"])
	require.Equal(t, "StagingTanStackStartRootStack", ctx["stack"])
	require.Equal(t, "run-1", ctx["run_id"])
	require.Equal(t, "staging", ctx["stage"])
}

func TestZapLogger_WritesConfiguredFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewZapLogger(observability.LoggerConfig{Format: "json", Level: "warn"}, WithOutput(&buf))
	require.NoError(t, err)

	logger.Info("filtered")
	logger.Warn("kept", map[string]any{"pattern": "/assets/*"})
	require.NoError(t, logger.Flush(context.Background()))

	out := buf.String()
	require.NotContains(t, out, "filtered")
	require.Contains(t, out, `"message":"kept"`)
	require.Contains(t, out, `"pattern":"/assets/*"`)
	require.EqualValues(t, 1, logger.GetStats().EntriesLogged)
}

func TestZapLogger_RejectsUnknownConfig(t *testing.T) {
	_, err := NewZapLogger(observability.LoggerConfig{Format: "xml"})
	require.Error(t, err)

	_, err = NewZapLogger(observability.LoggerConfig{Level: "loud"})
	require.Error(t, err)
}

func TestZapLogger_NotifiesErrorsOnly(t *testing.T) {
	core, _ := observer.New(zapcore.DebugLevel)
	notifier := &recordingNotifier{}

	logger, err := NewZapLogger(observability.LoggerConfig{}, WithZapLogger(ubzap.New(core)), WithErrorNotifier(notifier))
	require.NoError(t, err)

	scoped := logger.WithStage("production").WithFields(map[string]any{"component": "synth"})
	scoped.Info("not sent")
	scoped.Error("synth failed", map[string]any{"aws_session_token": "t"})
	require.NoError(t, logger.Flush(context.Background()))

	entries, _ := notifier.snapshot()
	require.Len(t, entries, 1)
	require.Equal(t, "synth failed", entries[0].Message)
	require.Equal(t, "production", entries[0].Stage)
	require.Equal(t, "synth", entries[0].Fields["component"])
	require.Equal(t, "[REDACTED]", entries[0].Fields["aws_session_token"])

	require.NoError(t, logger.Close())
	require.False(t, logger.IsHealthy())
}

func TestZapLogger_NotifierFailureIsRecorded(t *testing.T) {
	core, _ := observer.New(zapcore.DebugLevel)
	notifier := &recordingNotifier{err: errors.New("throttled")}

	logger, err := NewZapLogger(observability.LoggerConfig{MaxRetries: 2, RetryDelay: time.Millisecond},
		WithZapLogger(ubzap.New(core)), WithErrorNotifier(notifier))
	require.NoError(t, err)

	logger.Error("boom")
	require.NoError(t, logger.Flush(context.Background()))

	_, calls := notifier.snapshot()
	require.Equal(t, 2, calls)
	require.False(t, logger.IsHealthy())
	require.Equal(t, "throttled", logger.GetStats().LastError)
}
