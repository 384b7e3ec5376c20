package route

import (
	"context"

	"github.com/dmitrymomot/spindle/pkg/service"
)

// Method is a controller entry point addressed by the part of a route after
// the last dot.
type Method func(ctx context.Context, sc *service.Container, args *Args) Result

// Controller exposes the methods a route may address.
type Controller interface {
	Method(name string) (Method, bool)
}

// Methods is a map-backed Controller.
//
// Example:
//
//	func NewHome(sc *service.Container) (route.Controller, error) {
//		return route.Methods{"index": home}, nil
//	}
type Methods map[string]Method

func (m Methods) Method(name string) (Method, bool) {
	fn, ok := m[name]
	return fn, ok
}

// Constructor builds a controller for one request. The instance is cached
// in the request container and reused for every dispatch to it.
type Constructor func(sc *service.Container) (Controller, error)

// ModelConstructor builds a model for one request.
type ModelConstructor func(sc *service.Container) (any, error)

// Resolver maps controller routes to constructors.
type Resolver = Factory[Constructor]

// Models maps model routes to constructors.
type Models = Factory[ModelConstructor]

// NewResolver creates an empty controller resolver.
func NewResolver() *Resolver {
	return NewFactory[Constructor]("Controller")
}

// NewModels creates an empty model resolver.
func NewModels() *Models {
	return NewFactory[ModelConstructor]("Model")
}
