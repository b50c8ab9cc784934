package log

// Logger is the structured logging interface used throughout noderpc.
// Implementations must be safe for concurrent use.
type Logger interface {
	// Debug logs low-level details useful during development.
	// keysAndValues adds structured context (e.g., "method", name).
	Debug(msg string, keysAndValues ...any)
	// Info logs routine progress events.
	Info(msg string, keysAndValues ...any)
	// Warn logs unexpected situations that are not errors.
	Warn(msg string, keysAndValues ...any)
	// Error logs failures that prevent normal operation.
	Error(msg string, keysAndValues ...any)
	// Fatal logs an unrecoverable failure and may terminate the program.
	Fatal(msg string, keysAndValues ...any)
	// WithKV returns a logger carrying an extra key-value pair on all
	// future messages.
	WithKV(key string, value any) Logger
	// WithName returns a logger named after a component or module.
	WithName(name string) Logger
	// Name returns the logger's name.
	Name() string
}

// Level represents the severity of a log message.
type Level string

const (
	// LevelDebug is the most verbose level.
	LevelDebug Level = "debug"
	// LevelInfo is used for informational messages.
	LevelInfo Level = "info"
	// LevelWarn indicates potential issues.
	LevelWarn Level = "warn"
	// LevelError indicates something went wrong.
	LevelError Level = "error"
	// LevelFatal indicates errors that typically cause the program to exit.
	LevelFatal Level = "fatal"
)
