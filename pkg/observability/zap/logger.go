package zap

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	ubzap "go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/theory-cloud/ssrstack/pkg/observability"
	"github.com/theory-cloud/ssrstack/pkg/sanitization"
)

const (
	levelDebug = "debug"
	levelInfo  = "info"
	levelWarn  = "warn"
	levelError = "error"
)

type Option func(*loggerOptions)

type loggerOptions struct {
	initErr error

	zapLogger *ubzap.Logger
	output    io.Writer
	sanitizer observability.SanitizerFunc
	notifier  observability.ErrorNotifier
}

func WithZapLogger(logger *ubzap.Logger) Option {
	return func(opts *loggerOptions) {
		opts.zapLogger = logger
	}
}

// WithOutput redirects encoded entries; the CLI writes logs to stderr so stdout stays machine-readable.
func WithOutput(w io.Writer) Option {
	return func(opts *loggerOptions) {
		opts.output = w
	}
}

func WithSanitizer(fn observability.SanitizerFunc) Option {
	return func(opts *loggerOptions) {
		opts.sanitizer = fn
	}
}

func WithErrorNotifier(notifier observability.ErrorNotifier) Option {
	return func(opts *loggerOptions) {
		opts.notifier = notifier
	}
}

type zapCore struct {
	logger    *ubzap.Logger
	sanitizer observability.SanitizerFunc
	notifier  observability.ErrorNotifier

	retryDelay time.Duration
	maxRetries int

	notifyMu sync.Mutex
	notifyCh chan observability.LogEntry
	notifyWg sync.WaitGroup

	closeOnce sync.Once
	closed    atomic.Bool

	entriesLogged  atomic.Int64
	entriesDropped atomic.Int64
	flushCount     atomic.Int64
	errorCount     atomic.Int64
	lastFlushNanos atomic.Int64
	lastError      atomic.Value
}

type Logger struct {
	core *zapCore
	log  *ubzap.Logger

	fields map[string]any
	runID  string
	stage  string
}

var _ observability.StructuredLogger = (*Logger)(nil)

func NewZapLogger(config observability.LoggerConfig, options ...Option) (observability.StructuredLogger, error) {
	cfg := normalizeLoggerConfig(config)

	opts := &loggerOptions{
		output:    os.Stderr,
		sanitizer: sanitization.SanitizeFieldValue,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(opts)
	}
	if opts.initErr != nil {
		return nil, opts.initErr
	}

	base := opts.zapLogger
	if base == nil {
		level, err := parseZapLevel(cfg.Level)
		if err != nil {
			return nil, err
		}

		enc := zapEncoderConfig(cfg.EnableCaller)
		var encoder zapcore.Encoder
		switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
		case "console":
			encoder = zapcore.NewConsoleEncoder(enc)
		case "json":
			encoder = zapcore.NewJSONEncoder(enc)
		default:
			return nil, errors.New("observability/zap: unsupported log format")
		}

		base = ubzap.New(zapcore.NewCore(encoder, zapcore.AddSync(opts.output), level))
		if cfg.EnableCaller {
			base = base.WithOptions(ubzap.AddCaller())
		}
		if cfg.EnableStack {
			base = base.WithOptions(ubzap.AddStacktrace(zapcore.ErrorLevel))
		}
	}

	zcore := &zapCore{
		logger:     base,
		sanitizer:  opts.sanitizer,
		notifier:   opts.notifier,
		retryDelay: cfg.RetryDelay,
		maxRetries: cfg.MaxRetries,
	}
	zcore.lastError.Store("")

	if zcore.notifier != nil {
		zcore.notifyCh = make(chan observability.LogEntry, cfg.BufferSize)
		go zcore.runNotifier()
	}

	return &Logger{
		core:   zcore,
		log:    base,
		fields: map[string]any{},
	}, nil
}

func normalizeLoggerConfig(config observability.LoggerConfig) observability.LoggerConfig {
	cfg := config
	if strings.TrimSpace(cfg.Format) == "" {
		cfg.Format = "console"
	}
	if strings.TrimSpace(cfg.Level) == "" {
		cfg.Level = levelInfo
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 64
	}
	return cfg
}

func parseZapLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case levelDebug:
		return zapcore.DebugLevel, nil
	case levelInfo, "":
		return zapcore.InfoLevel, nil
	case levelWarn, "warning":
		return zapcore.WarnLevel, nil
	case levelError:
		return zapcore.ErrorLevel, nil
	default:
		return 0, errors.New("observability/zap: unsupported log level")
	}
}

func zapEncoderConfig(enableCaller bool) zapcore.EncoderConfig {
	enc := zapcore.EncoderConfig{
		TimeKey:        "timestamp",
		LevelKey:       "level",
		MessageKey:     "message",
		EncodeTime:     zapcore.RFC3339TimeEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	if enableCaller {
		enc.CallerKey = "caller"
		enc.EncodeCaller = zapcore.ShortCallerEncoder
	}
	return enc
}

func (l *Logger) Debug(message string, fields ...map[string]any) {
	l.logEntry(levelDebug, message, fields...)
}
func (l *Logger) Info(message string, fields ...map[string]any) {
	l.logEntry(levelInfo, message, fields...)
}
func (l *Logger) Warn(message string, fields ...map[string]any) {
	l.logEntry(levelWarn, message, fields...)
}
func (l *Logger) Error(message string, fields ...map[string]any) {
	l.logEntry(levelError, message, fields...)
}

func (l *Logger) WithField(key string, value any) observability.StructuredLogger {
	return l.WithFields(map[string]any{key: value})
}

func (l *Logger) WithFields(fields map[string]any) observability.StructuredLogger {
	next := l.clone()
	for k, v := range fields {
		next.fields[k] = v
	}
	next.log = next.log.With(l.core.zapFields(fields)...)
	return next
}

func (l *Logger) WithRunID(runID string) observability.StructuredLogger {
	next := l.clone()
	next.runID = runID
	next.log = next.log.With(ubzap.String("run_id", sanitization.SanitizeLogString(runID)))
	return next
}

func (l *Logger) WithStage(stage string) observability.StructuredLogger {
	next := l.clone()
	next.stage = stage
	next.log = next.log.With(ubzap.String("stage", sanitization.SanitizeLogString(stage)))
	return next
}

func (l *Logger) Flush(ctx context.Context) error {
	if l == nil || l.core == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	l.core.flushCount.Add(1)
	l.core.waitNotifier(ctx)

	err := l.core.logger.Sync()
	if err != nil && !isIgnorableSyncError(err) {
		l.core.recordError(err)
	} else {
		err = nil
	}
	l.core.lastFlushNanos.Store(time.Now().UnixNano())
	return err
}

func (l *Logger) Close() error {
	if l == nil || l.core == nil {
		return nil
	}
	return l.core.close()
}

func (l *Logger) IsHealthy() bool {
	if l == nil || l.core == nil || l.core.closed.Load() {
		return false
	}
	return l.core.lastErrorString() == ""
}

func (l *Logger) GetStats() observability.LoggerStats {
	if l == nil || l.core == nil {
		return observability.LoggerStats{}
	}
	return observability.LoggerStats{
		LastFlush:      time.Unix(0, l.core.lastFlushNanos.Load()),
		LastError:      l.core.lastErrorString(),
		EntriesLogged:  l.core.entriesLogged.Load(),
		EntriesDropped: l.core.entriesDropped.Load(),
		FlushCount:     l.core.flushCount.Load(),
		ErrorCount:     l.core.errorCount.Load(),
	}
}

func (l *Logger) clone() *Logger {
	nextFields := make(map[string]any, len(l.fields))
	for k, v := range l.fields {
		nextFields[k] = v
	}
	return &Logger{
		core:   l.core,
		log:    l.log,
		fields: nextFields,
		runID:  l.runID,
		stage:  l.stage,
	}
}

func (l *Logger) logEntry(level string, message string, fields ...map[string]any) {
	if l == nil || l.core == nil || l.log == nil || l.core.closed.Load() {
		return
	}

	message = sanitization.SanitizeLogString(message)
	callFields := mergeFields(fields...)

	zfields := l.core.zapFields(callFields)
	switch level {
	case levelDebug:
		l.log.Debug(message, zfields...)
	case levelWarn:
		l.log.Warn(message, zfields...)
	case levelError:
		l.log.Error(message, zfields...)
	default:
		l.log.Info(message, zfields...)
	}
	l.core.entriesLogged.Add(1)

	if level == levelError && l.core.notifier != nil {
		l.core.enqueueNotification(observability.LogEntry{
			Timestamp: time.Now(),
			Level:     level,
			Message:   message,
			Fields:    l.core.sanitize(mergeFields(l.fields, callFields)),
			RunID:     l.runID,
			Stage:     l.stage,
		})
	}
}

func mergeFields(sets ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, set := range sets {
		for k, v := range set {
			out[k] = v
		}
	}
	return out
}

func (c *zapCore) sanitize(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if c.sanitizer != nil {
			out[k] = c.sanitizer(k, v)
		} else {
			out[k] = sanitization.SanitizeFieldValue(k, v)
		}
	}
	return out
}

func (c *zapCore) zapFields(fields map[string]any) []ubzap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]ubzap.Field, 0, len(fields))
	for k, v := range c.sanitize(fields) {
		out = append(out, ubzap.Any(k, v))
	}
	return out
}

func (c *zapCore) enqueueNotification(entry observability.LogEntry) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	if c.closed.Load() || c.notifyCh == nil {
		c.entriesDropped.Add(1)
		return
	}

	c.notifyWg.Add(1)
	select {
	case c.notifyCh <- entry:
	default:
		c.notifyWg.Done()
		c.entriesDropped.Add(1)
	}
}

func (c *zapCore) runNotifier() {
	for entry := range c.notifyCh {
		if err := c.notifyWithRetries(entry); err != nil {
			c.recordError(err)
		}
		c.notifyWg.Done()
	}
}

func (c *zapCore) notifyWithRetries(entry observability.LogEntry) error {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if err := c.notifier.Notify(context.Background(), entry); err != nil {
			lastErr = err
			if attempt < c.maxRetries-1 {
				time.Sleep(c.retryDelay)
			}
			continue
		}
		return nil
	}
	return lastErr
}

func (c *zapCore) waitNotifier(ctx context.Context) {
	if c.notifier == nil {
		return
	}

	done := make(chan struct{})
	go func() {
		c.notifyWg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
	case <-done:
	}
}

func (c *zapCore) close() error {
	var err error
	c.closeOnce.Do(func() {
		c.notifyMu.Lock()
		c.closed.Store(true)
		if c.notifyCh != nil {
			close(c.notifyCh)
			c.notifyCh = nil
		}
		c.notifyMu.Unlock()

		c.notifyWg.Wait()
		if syncErr := c.logger.Sync(); syncErr != nil && !isIgnorableSyncError(syncErr) {
			c.recordError(syncErr)
			err = syncErr
		}
	})
	return err
}

func (c *zapCore) recordError(err error) {
	c.errorCount.Add(1)
	c.lastError.Store(err.Error())
}

func (c *zapCore) lastErrorString() string {
	lastError, ok := c.lastError.Load().(string)
	if !ok {
		return ""
	}
	return lastError
}

// Syncing a terminal-backed stderr fails with EINVAL/ENOTTY on most platforms.
func isIgnorableSyncError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "invalid argument") || strings.Contains(msg, "inappropriate ioctl")
}
