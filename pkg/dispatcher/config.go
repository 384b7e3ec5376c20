package dispatcher

import (
	"errors"
	"fmt"

	"github.com/dmitrymomot/spindle/pkg/route"
)

// Config is the read-only pipeline configuration loaded once at startup.
type Config struct {
	// Application is the fallback application id when none is resolved from the request.
	Application string `yaml:"application"`
	// DefaultRoute is dispatched when the request carries no route.
	DefaultRoute string `yaml:"default_route"`
	// ErrorRoute is dispatched at most once per request when an action fails.
	ErrorRoute string `yaml:"error_route"`
	// PreActions run in order before the main action.
	PreActions []string `yaml:"pre_actions"`
	// Events maps trigger patterns to {priority: route}.
	Events map[string]map[int]string `yaml:"events"`
	// MaxRedispatch bounds the dispatch loop.
	MaxRedispatch int `yaml:"max_redispatch"`
}

// DefaultConfig returns the built-in pipeline.
func DefaultConfig() Config {
	return Config{
		Application:  "app",
		DefaultRoute: "common/home",
		ErrorRoute:   "error/not_found",
		PreActions: []string{
			"system/settings",
			"system/application",
			"system/event",
			"system/maintenance",
		},
		Events: map[string]map[int]string{
			"controller/*/before": {0: "event/language.before"},
			"controller/*/after":  {0: "event/language.after"},
		},
		MaxRedispatch: 32,
	}
}

// Routes returns every route the config refers to.
func (c Config) Routes() []string {
	routes := []string{c.DefaultRoute, c.ErrorRoute}
	routes = append(routes, c.PreActions...)
	for _, listeners := range c.Events {
		for _, r := range listeners {
			routes = append(routes, r)
		}
	}
	return routes
}

// Validate checks the config against the controller table so that unknown
// routes fail at startup rather than per request.
func (c Config) Validate(resolver *route.Resolver) error {
	if c.DefaultRoute == "" || c.ErrorRoute == "" {
		return ErrMissingRoute
	}
	var errs []error
	for _, r := range c.Routes() {
		if err := resolver.Validate(route.Parse(r).Controller()); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("pipeline config: %w", errors.Join(errs...))
	}
	return nil
}
