package tenant

import (
	"net/http"
	"slices"
)

// DefaultApplication is used when the request names no valid application.
const DefaultApplication = "default"

type config struct {
	fallback string
	allowed  []string
}

type Option func(*config)

// WithDefault sets the fallback application id.
func WithDefault(application string) Option {
	return func(c *config) { c.fallback = application }
}

// WithAllowed restricts resolution to the given application ids. Anything
// else falls back to the default.
func WithAllowed(applications ...string) Option {
	return func(c *config) { c.allowed = applications }
}

// Select returns the application for r: the resolved candidate when it is
// valid (and allowed, if a list is set), the default otherwise.
func Select(resolver Resolver, r *http.Request, opts ...Option) string {
	c := newConfig(opts)
	return c.selectApplication(resolver.Resolve(r))
}

// Middleware stores the selected application id in the request context.
func Middleware(resolver Resolver, opts ...Option) func(http.Handler) http.Handler {
	c := newConfig(opts)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			application := c.selectApplication(resolver.Resolve(r))
			next.ServeHTTP(w, r.WithContext(WithApplication(r.Context(), application)))
		})
	}
}

func newConfig(opts []Option) *config {
	c := &config{fallback: DefaultApplication}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *config) selectApplication(candidate string) string {
	if Validate(candidate) != nil {
		return c.fallback
	}
	if len(c.allowed) > 0 && !slices.Contains(c.allowed, candidate) {
		return c.fallback
	}
	return candidate
}
