package event

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"regexp"
	"slices"
	"sync"

	"github.com/dmitrymomot/spindle/pkg/logger"
	"github.com/dmitrymomot/spindle/pkg/route"
	"github.com/dmitrymomot/spindle/pkg/service"
)

// Registration binds a route action to a trigger pattern.
type Registration struct {
	Trigger  string
	Action   route.Action
	Priority int

	pattern *regexp.Regexp
}

// Bus is an ordered registry of actions triggered by lifecycle event names.
// Registrations run in ascending priority; equal priorities keep insertion
// order.
type Bus struct {
	mu   sync.RWMutex
	regs []Registration
	log  *slog.Logger
}

// Option configures a Bus.
type Option func(*Bus)

// WithLogger sets the logger used to report listener failures.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bus) {
		if l != nil {
			b.log = l
		}
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{log: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Register appends a registration and re-sorts the list by priority.
func (b *Bus) Register(trigger string, action route.Action, priority int) {
	reg := Registration{
		Trigger:  trigger,
		Action:   action,
		Priority: priority,
		pattern:  compile(trigger),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.regs = append(b.regs, reg)
	slices.SortStableFunc(b.regs, func(x, y Registration) int {
		return cmp.Compare(x.Priority, y.Priority)
	})
}

// LoadConfig registers a trigger to {priority: route} table. Priorities
// within a trigger are registered in ascending order so the result does not
// depend on map iteration.
func (b *Bus) LoadConfig(events map[string]map[int]string) error {
	for _, trigger := range slices.Sorted(maps.Keys(events)) {
		if trigger == "" {
			return ErrEmptyTrigger
		}
		listeners := events[trigger]
		for _, priority := range slices.Sorted(maps.Keys(listeners)) {
			b.Register(trigger, route.Parse(listeners[priority]), priority)
		}
	}
	return nil
}

// Trigger runs every registration whose pattern matches name, in priority
// order, with the shared args. Listener failures do not stop later
// listeners; they are logged and returned joined.
func (b *Bus) Trigger(ctx context.Context, sc *service.Container, name string, args *route.Args) error {
	b.mu.RLock()
	matched := make([]Registration, 0, len(b.regs))
	for _, reg := range b.regs {
		if reg.pattern.MatchString(name) {
			matched = append(matched, reg)
		}
	}
	b.mu.RUnlock()

	if args == nil {
		args = &route.Args{}
	}

	var errs []error
	for _, reg := range matched {
		res := reg.Action.Execute(ctx, sc, args)
		if res.Kind() != route.KindFailure {
			continue
		}
		b.log.WarnContext(ctx, "event listener failed",
			logger.Event(name),
			logger.Route(reg.Action.ID()),
			logger.Error(res.Err()),
		)
		errs = append(errs, fmt.Errorf("%w: %s on %s: %w", ErrListenerFailed, reg.Action.ID(), name, res.Err()))
	}
	return errors.Join(errs...)
}

// Unregister removes registrations with exactly this trigger and route id.
func (b *Bus) Unregister(trigger, routeID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.regs = slices.DeleteFunc(b.regs, func(r Registration) bool {
		return r.Trigger == trigger && r.Action.ID() == routeID
	})
}

// Clear removes every registration for trigger.
func (b *Bus) Clear(trigger string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.regs = slices.DeleteFunc(b.regs, func(r Registration) bool {
		return r.Trigger == trigger
	})
}

// Registrations returns a snapshot of the registrations matching trigger
// exactly, or all of them when trigger is empty.
func (b *Bus) Registrations(trigger string) []Registration {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Registration, 0, len(b.regs))
	for _, r := range b.regs {
		if trigger == "" || r.Trigger == trigger {
			out = append(out, r)
		}
	}
	return out
}

// Clone returns an independent bus with the same registrations and logger.
// A process-wide bus is cloned per request so that request-scoped listeners
// never leak into other requests.
func (b *Bus) Clone() *Bus {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return &Bus{regs: slices.Clone(b.regs), log: b.log}
}
