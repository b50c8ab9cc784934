package log

var _ Logger = NoopLogger{}

// NoopLogger discards all log messages. It is the safe default when no
// logger has been configured, and keeps tests quiet.
type NoopLogger struct{}

// NewNoopLogger creates a NoopLogger.
func NewNoopLogger() Logger {
	return NoopLogger{}
}

// Debug implements Logger.Debug but performs no operation.
func (n NoopLogger) Debug(msg string, keysAndValues ...any) {}

// Info implements Logger.Info but performs no operation.
func (n NoopLogger) Info(msg string, keysAndValues ...any) {}

// Warn implements Logger.Warn but performs no operation.
func (n NoopLogger) Warn(msg string, keysAndValues ...any) {}

// Error implements Logger.Error but performs no operation.
func (n NoopLogger) Error(msg string, keysAndValues ...any) {}

// Fatal implements Logger.Fatal but performs no operation.
func (n NoopLogger) Fatal(msg string, keysAndValues ...any) {}

// WithKV implements Logger.WithKV and returns the same NoopLogger.
func (n NoopLogger) WithKV(key string, value any) Logger { return n }

// WithName implements Logger.WithName and returns the same NoopLogger.
func (n NoopLogger) WithName(name string) Logger { return n }

// Name implements Logger.Name and always returns "noop".
func (n NoopLogger) Name() string { return "noop" }
