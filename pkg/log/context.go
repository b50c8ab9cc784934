// Package log provides structured logging for noderpc.
//
// The package defines a small Logger interface, a zap-backed
// implementation with console, logfmt and JSON encoders, a no-op
// implementation, and helpers to carry a logger through a
// context.Context so that library code never needs a global logger.
package log

import (
	"context"
)

type contextKey struct{}

var loggerContextKey = contextKey{}

// SetContextLogger attaches the provided logger to the context.
// If logger is nil, a NoopLogger is stored instead.
func SetContextLogger(ctx context.Context, lg Logger) context.Context {
	if lg == nil {
		lg = NewNoopLogger()
	}
	return context.WithValue(ctx, loggerContextKey, lg)
}

// FromContext retrieves the logger stored in the context.
// If no logger is found, it returns a NoopLogger as a safe default.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerContextKey).(Logger); ok {
		return l
	}
	return NewNoopLogger()
}
