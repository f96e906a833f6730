package logging

import (
	"context"

	"github.com/charmbracelet/log"
)

type contextKey struct{}

// loggerKey carries the command's logger down into the runner and the
// config loader.
//
//nolint:gochecknoglobals // context key
var loggerKey = contextKey{}

// FromContext returns the logger stored by WithLogger. Library callers that
// never went through the CLI get Default.
func FromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(loggerKey).(*log.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}

// WithLogger attaches logger to ctx. A nil ctx is treated as Background.
func WithLogger(ctx context.Context, logger *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, logger)
}

// ForFile returns the context's logger with every entry tagged by the
// source file being parsed or fixed.
func ForFile(ctx context.Context, path string) *log.Logger {
	return FromContext(ctx).With(FieldPath, path)
}
