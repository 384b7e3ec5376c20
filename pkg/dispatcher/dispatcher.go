package dispatcher

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/dmitrymomot/spindle/pkg/event"
	"github.com/dmitrymomot/spindle/pkg/logger"
	"github.com/dmitrymomot/spindle/pkg/route"
	"github.com/dmitrymomot/spindle/pkg/service"
)

// privateMarker in a requested route signals a direct call to an
// underscore method.
const privateMarker = "._"

// isPrivate reports whether rt addresses an underscore method once the
// characters route.Parse strips are gone.
func isPrivate(rt string) bool {
	return strings.Contains(route.Parse(rt).ID(), privateMarker)
}

// Stage names a step of the pipeline.
type Stage string

const (
	StagePreAction    Stage = "pre_action"
	StageRouteResolve Stage = "route_resolve"
	StageBeforeEvent  Stage = "before_event"
	StageDispatch     Stage = "dispatch"
	StageAfterEvent   Stage = "after_event"
	StageFlush        Stage = "flush"
)

// Sink receives the final output. It is the only I/O the dispatcher performs.
type Sink interface {
	Flush(ctx context.Context, out route.Output) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, out route.Output) error

func (f SinkFunc) Flush(ctx context.Context, out route.Output) error { return f(ctx, out) }

// Outcome describes a finished pipeline run.
type Outcome struct {
	Output route.Output
	// Trigger is the route used for the before and after event names.
	Trigger string
	// Final is the id of the action that produced the output.
	Final string
	// Failures lists the errors recovered through the error route.
	Failures []error
	// Steps counts executions of the dispatch loop.
	Steps int
}

// Dispatcher runs the request pipeline:
// pre-actions, route resolution, before event, dispatch loop, after event
// and flush.
type Dispatcher struct {
	cfg    Config
	events *event.Bus
	log    *slog.Logger
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// WithMaxRedispatch overrides the dispatch loop bound.
func WithMaxRedispatch(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.cfg.MaxRedispatch = n
		}
	}
}

// New creates a dispatcher. bus serves requests whose container carries no
// bus of their own; nil means an empty one.
func New(cfg Config, bus *event.Bus, opts ...Option) (*Dispatcher, error) {
	if cfg.DefaultRoute == "" || cfg.ErrorRoute == "" {
		return nil, ErrMissingRoute
	}
	if cfg.MaxRedispatch <= 0 {
		cfg.MaxRedispatch = DefaultConfig().MaxRedispatch
	}
	if bus == nil {
		bus = event.NewBus()
	}
	d := &Dispatcher{
		cfg:    cfg,
		events: bus,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Dispatch runs the pipeline for the requested route and flushes the output
// to sink. An empty requested route selects the default route.
//
// Failures of pre-actions and of the dispatch loop are recovered by running
// the error route, at most once per request. A failure after that is
// returned as ErrUnrecoverable and nothing is flushed.
func (d *Dispatcher) Dispatch(ctx context.Context, sc *service.Container, requested string, sink Sink) (Outcome, error) {
	start := time.Now()
	var outcome Outcome

	errorAction := route.Parse(d.cfg.ErrorRoute)
	errorAvailable := true
	var action route.Action

	for _, raw := range d.cfg.PreActions {
		pre := route.Parse(raw)
		res := pre.Execute(ctx, sc, &route.Args{Route: pre.ID()})

		if res.Kind() == route.KindRedispatch {
			action = res.Next()
			break
		}
		if res.Kind() == route.KindFailure {
			d.log.ErrorContext(ctx, "pre-action failed",
				logger.Stage(string(StagePreAction)),
				logger.Route(pre.ID()),
				logger.Error(res.Err()),
			)
			outcome.Failures = append(outcome.Failures, res.Err())
			action = errorAction
			errorAvailable = false
			break
		}
	}

	rt := requested
	if rt == "" {
		rt = d.cfg.DefaultRoute
	}
	if isPrivate(rt) {
		d.log.WarnContext(ctx, "blocked private route",
			logger.Stage(string(StageRouteResolve)),
			logger.Route(rt),
		)
		outcome.Failures = append(outcome.Failures, ErrRouteBlocked)
		action = route.Parse(d.cfg.ErrorRoute)
	}
	if !action.IsZero() {
		rt = action.ID()
	}
	outcome.Trigger = rt

	args := &route.Args{Route: rt}
	d.trigger(ctx, sc, StageBeforeEvent, "controller/"+outcome.Trigger+"/before", args)

	if action.IsZero() {
		action = route.Parse(args.Route)
	}

	var out route.Output
	for !action.IsZero() {
		if outcome.Steps >= d.cfg.MaxRedispatch {
			return outcome, errors.Join(ErrUnrecoverable, ErrRedispatchLimit)
		}
		outcome.Steps++

		current := action
		res := current.Execute(ctx, sc, args)
		action = route.Action{}

		switch res.Kind() {
		case route.KindRedispatch:
			action = res.Next()
		case route.KindFailure:
			if !errorAvailable {
				d.log.ErrorContext(ctx, "error route unavailable",
					logger.Stage(string(StageDispatch)),
					logger.Route(current.ID()),
					logger.Error(res.Err()),
				)
				return outcome, errors.Join(ErrUnrecoverable, res.Err())
			}
			d.log.ErrorContext(ctx, "action failed",
				logger.Stage(string(StageDispatch)),
				logger.Route(current.ID()),
				logger.Error(res.Err()),
			)
			outcome.Failures = append(outcome.Failures, res.Err())
			action = errorAction
			errorAvailable = false
		default:
			out = res.Output()
			outcome.Final = current.ID()
		}
	}

	args.Output = &out
	d.trigger(ctx, sc, StageAfterEvent, "controller/"+outcome.Trigger+"/after", args)
	if args.Output != nil {
		out = *args.Output
	}
	outcome.Output = out

	if sink != nil {
		if err := sink.Flush(ctx, out); err != nil {
			return outcome, errors.Join(ErrFlush, err)
		}
	}

	d.log.DebugContext(ctx, "request dispatched",
		logger.Route(outcome.Final),
		slog.String("trigger", outcome.Trigger),
		slog.Int("steps", outcome.Steps),
		logger.Duration(time.Since(start)),
	)
	return outcome, nil
}

// trigger fires a lifecycle event. Listener failures are advisory and only
// logged.
func (d *Dispatcher) trigger(ctx context.Context, sc *service.Container, stage Stage, name string, args *route.Args) {
	if err := d.bus(sc).Trigger(ctx, sc, name, args); err != nil {
		d.log.WarnContext(ctx, "lifecycle event failed",
			logger.Stage(string(stage)),
			logger.Event(name),
			logger.Error(err),
		)
	}
}

// bus returns the request-scoped bus stored under service.KeyEvents, or the
// dispatcher's own bus when the request has none.
func (d *Dispatcher) bus(sc *service.Container) *event.Bus {
	if b, err := service.Get[*event.Bus](sc, service.KeyEvents); err == nil {
		return b
	}
	return d.events
}
