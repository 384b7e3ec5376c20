package session

import "context"

type contextKey struct{}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session opened by Middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}

// MustFromContext is FromContext for handlers mounted behind Middleware.
func MustFromContext(ctx context.Context) *Session {
	s, ok := FromContext(ctx)
	if !ok {
		panic("session: no session in context, is the middleware mounted?")
	}
	return s
}

// UserIDFromContext returns the user bound to the session in ctx.
func UserIDFromContext(ctx context.Context) (string, bool) {
	s, ok := FromContext(ctx)
	if !ok || !s.IsAuthenticated() {
		return "", false
	}
	return s.UserID(), true
}
