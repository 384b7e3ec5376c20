package tenant

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// WithApplication stores the application id in ctx.
func WithApplication(ctx context.Context, application string) context.Context {
	return context.WithValue(ctx, contextKey{}, application)
}

// FromContext returns the application id stored by Middleware.
func FromContext(ctx context.Context) (string, bool) {
	application, ok := ctx.Value(contextKey{}).(string)
	return application, ok && application != ""
}

// LoggerExtractor returns a ContextExtractor for the logger that adds the
// application id.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if application, ok := FromContext(ctx); ok {
			return slog.String("application", application), true
		}
		return slog.Attr{}, false
	}
}
