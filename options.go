package spindle

import (
	"log/slog"

	"github.com/dmitrymomot/spindle/pkg/event"
	"github.com/dmitrymomot/spindle/pkg/httpserver"
	"github.com/dmitrymomot/spindle/pkg/pg"
	"github.com/dmitrymomot/spindle/pkg/route"
	"github.com/dmitrymomot/spindle/pkg/tenant"
)

type Option func(*App)

func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// WithModels sets the model resolver exposed to controllers.
func WithModels(m *route.Models) Option {
	return func(a *App) { a.models = m }
}

// WithDB exposes the connection manager to controllers under service.KeyDB.
func WithDB(db *pg.Manager) Option {
	return func(a *App) { a.db = db }
}

// WithService adds a process-wide value to every request container.
// Keys used by the engine itself cannot be overridden.
func WithService(key string, v any) Option {
	return func(a *App) { a.services[key] = v }
}

// WithCheck adds a readiness probe served on /readyz.
func WithCheck(name string, check httpserver.Check) Option {
	return func(a *App) { a.checks[name] = check }
}

// WithBus sets the process-wide event bus. The pipeline listeners are
// registered on it and each request works on a copy.
func WithBus(b *event.Bus) Option {
	return func(a *App) {
		if b != nil {
			a.bus = b
		}
	}
}

// WithTenantResolver replaces the subdomain based application lookup.
func WithTenantResolver(r tenant.Resolver) Option {
	return func(a *App) {
		if r != nil {
			a.tenant = r
		}
	}
}
