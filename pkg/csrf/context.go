package csrf

import "context"

type guardContextKey struct{}

func WithGuard(ctx context.Context, g *Guard) context.Context {
	return context.WithValue(ctx, guardContextKey{}, g)
}

func FromContext(ctx context.Context) (*Guard, bool) {
	g, ok := ctx.Value(guardContextKey{}).(*Guard)
	return g, ok
}

// TokenFromContext returns the token of the guard in ctx, or "".
func TokenFromContext(ctx context.Context) string {
	if g, ok := FromContext(ctx); ok {
		return g.Token()
	}
	return ""
}
