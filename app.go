package spindle

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/spindle/pkg/clientip"
	"github.com/dmitrymomot/spindle/pkg/csrf"
	"github.com/dmitrymomot/spindle/pkg/dispatcher"
	"github.com/dmitrymomot/spindle/pkg/event"
	"github.com/dmitrymomot/spindle/pkg/httpserver"
	"github.com/dmitrymomot/spindle/pkg/logger"
	"github.com/dmitrymomot/spindle/pkg/pg"
	"github.com/dmitrymomot/spindle/pkg/requestid"
	"github.com/dmitrymomot/spindle/pkg/route"
	"github.com/dmitrymomot/spindle/pkg/service"
	"github.com/dmitrymomot/spindle/pkg/session"
	"github.com/dmitrymomot/spindle/pkg/tenant"
)

// RouteParam is the query parameter naming the requested route.
const RouteParam = "route"

// App is the http.Handler serving the engine.
type App struct {
	cfg      Config
	pipeline dispatcher.Config

	resolver   *route.Resolver
	models     *route.Models
	sessions   *session.Manager
	bus        *event.Bus
	dispatcher *dispatcher.Dispatcher
	tenant     tenant.Resolver
	db         *pg.Manager
	services   map[string]any
	checks     map[string]httpserver.Check

	log    *slog.Logger
	router chi.Router
}

// New validates pipeline against resolver and builds the router.
func New(cfg Config, pipeline dispatcher.Config, resolver *route.Resolver, sessions *session.Manager, opts ...Option) (*App, error) {
	if resolver == nil {
		return nil, ErrNoResolver
	}
	if sessions == nil {
		return nil, ErrNoSessions
	}
	if err := pipeline.Validate(resolver); err != nil {
		return nil, err
	}

	a := &App{
		cfg:      cfg,
		pipeline: pipeline,
		resolver: resolver,
		sessions: sessions,
		tenant:   tenant.NewSubdomainResolver(cfg.subdomainSuffix()),
		services: make(map[string]any),
		checks:   make(map[string]httpserver.Check),
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.bus == nil {
		a.bus = event.NewBus(event.WithLogger(a.log))
	}
	if err := a.bus.LoadConfig(pipeline.Events); err != nil {
		return nil, err
	}

	d, err := dispatcher.New(pipeline, a.bus, dispatcher.WithLogger(a.log))
	if err != nil {
		return nil, err
	}
	a.dispatcher = d
	a.router = a.routes()
	return a, nil
}

func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Bus returns the process-wide event bus.
func (a *App) Bus() *event.Bus { return a.bus }

func (a *App) routes() chi.Router {
	r := chi.NewRouter()

	tenantOpts := []tenant.Option{}
	if a.pipeline.Application != "" {
		tenantOpts = append(tenantOpts, tenant.WithDefault(a.pipeline.Application))
	}
	if len(a.cfg.Applications) > 0 {
		tenantOpts = append(tenantOpts, tenant.WithAllowed(a.cfg.Applications...))
	}

	r.Use(
		middleware.Recoverer,
		requestid.Middleware,
		clientip.Middleware,
		tenant.Middleware(a.tenant, tenantOpts...),
	)
	if a.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(a.cfg.RequestTimeout))
	}

	r.Get("/healthz", httpserver.Liveness())
	r.Get("/readyz", httpserver.Readiness(a.log, a.cfg.ReadinessTimeout, a.checks))

	r.Group(func(r chi.Router) {
		r.Use(a.sessions.Middleware, csrf.Middleware(lazyStore))
		r.HandleFunc("/", a.dispatch)
		r.HandleFunc("/*", a.dispatch)
	})
	return r
}

func (a *App) dispatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sink := NewHTTPSink(w)

	outcome, err := a.dispatcher.Dispatch(ctx, a.container(r), r.URL.Query().Get(RouteParam), sink)
	if err != nil {
		a.log.ErrorContext(ctx, "request failed",
			logger.Route(outcome.Trigger),
			logger.Errors(outcome.Failures...),
			logger.Error(err),
		)
		if !sink.Written() {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	}
}

// container seeds the per-request service container.
func (a *App) container(r *http.Request) *service.Container {
	ctx := r.Context()
	application, _ := tenant.FromContext(ctx)

	sc := service.New(a.services)
	sc.Set(service.KeyApplication, application)
	sc.Set(service.KeyResolver, a.resolver)
	sc.Set(service.KeyEvents, a.bus.Clone())
	sc.Set(service.KeyLogger, a.log)
	sc.Set(service.KeyRequest, r)
	if a.models != nil {
		sc.Set(service.KeyModels, a.models)
	}
	if a.db != nil {
		sc.Set(service.KeyDB, a.db)
	}
	if s, ok := session.FromContext(ctx); ok {
		sc.Set(service.KeySession, s)
	}
	if g, ok := csrf.FromContext(ctx); ok {
		sc.Set(service.KeyCSRF, g)
	}
	return sc
}

func lazyStore(r *http.Request) (csrf.LazyStore, bool) {
	s, ok := session.FromContext(r.Context())
	if !ok {
		return nil, false
	}
	return s, true
}
