package route

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrymomot/spindle/pkg/service"
)

const (
	defaultMethod  = "index"
	reservedPrefix = "__"
	controllerKey  = "controller:"
)

var actionSanitizer = regexp.MustCompile(`[^a-zA-Z0-9_/.]`)

// Action is the parsed, immutable identity of a controller and method pair.
type Action struct {
	id         string
	controller string
	method     string
}

// Parse strips disallowed characters from raw and splits it on the last dot
// into controller id and method name. Without a dot the method is "index".
func Parse(raw string) Action {
	id := actionSanitizer.ReplaceAllString(raw, "")
	a := Action{id: id, controller: id, method: defaultMethod}
	if pos := strings.LastIndex(id, "."); pos >= 0 {
		a.controller = id[:pos]
		a.method = id[pos+1:]
	}
	return a
}

// ID returns the sanitised route.
func (a Action) ID() string { return a.id }

// Controller returns the controller id.
func (a Action) Controller() string { return a.controller }

// Method returns the method name.
func (a Action) Method() string { return a.method }

// IsZero reports whether the action is empty.
func (a Action) IsZero() bool { return a.id == "" }

func (a Action) String() string { return a.id }

// Execute resolves the controller through the request container and invokes
// the method with args. The controller instance is cached in the container,
// so repeated dispatch to the same controller within one request reuses it.
func (a Action) Execute(ctx context.Context, sc *service.Container, args *Args) Result {
	if strings.HasPrefix(a.method, reservedPrefix) {
		return Fail(fmt.Errorf("%w: %s", ErrForbiddenMethod, a.id))
	}

	ctrl, err := a.controllerFor(sc)
	if err != nil {
		return Fail(err)
	}

	method, ok := ctrl.Method(a.method)
	if !ok || method == nil {
		return Fail(fmt.Errorf("%w: %s", ErrMethodNotFound, a.id))
	}

	if args == nil {
		args = &Args{Route: a.id}
	}
	return method(ctx, sc, args)
}

func (a Action) controllerFor(sc *service.Container) (Controller, error) {
	key := controllerKey + strings.ReplaceAll(a.controller, "/", "_")

	ctrl, err := service.Get[Controller](sc, key)
	if err == nil {
		return ctrl, nil
	}
	if !errors.Is(err, service.ErrNotFound) {
		return nil, err
	}

	resolver, err := service.Get[*Resolver](sc, service.KeyResolver)
	if err != nil {
		return nil, errors.Join(ErrControllerNotFound, err)
	}
	// Requests without an application id resolve shared controllers only.
	application, _ := service.Get[string](sc, service.KeyApplication)

	ctor, _, err := resolver.Resolve(application, a.controller)
	if err != nil {
		return nil, errors.Join(ErrControllerNotFound, err)
	}

	ctrl, err = ctor(sc)
	if err != nil {
		return nil, fmt.Errorf("construct controller %s: %w", a.controller, err)
	}
	if ctrl == nil {
		return nil, fmt.Errorf("%w: %s constructor returned nil", ErrControllerNotFound, a.controller)
	}

	sc.Set(key, ctrl)
	return ctrl, nil
}
