package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// FromContext extracts the logger from context
// If no logger is found, returns a disabled logger (no-op)
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent creates a child logger with a component field
func WithComponent(ctx context.Context, component string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("component", component).Logger()
	return WithContext(ctx, childLogger)
}

// WithStripID creates a child logger with a strip_id field
func WithStripID(ctx context.Context, stripID string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("strip_id", stripID).Logger()
	return WithContext(ctx, childLogger)
}

// WithTabID creates a child logger with a tab_id field
func WithTabID(ctx context.Context, tabID int) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Int("tab_id", tabID).Logger()
	return WithContext(ctx, childLogger)
}
