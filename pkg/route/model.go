package route

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/spindle/pkg/service"
)

const modelKey = "model:"

// LoadModel returns the model registered for route, constructing it on first
// use and caching it in the request container.
func LoadModel[T any](sc *service.Container, route string) (T, error) {
	var zero T
	key := modelKey + strings.ReplaceAll(factorySanitizer.ReplaceAllString(route, ""), "/", "_")

	if v, err := service.Get[T](sc, key); err == nil {
		return v, nil
	} else if !errors.Is(err, service.ErrNotFound) {
		return zero, err
	}

	models, err := service.Get[*Models](sc, service.KeyModels)
	if err != nil {
		return zero, err
	}
	application, _ := service.Get[string](sc, service.KeyApplication)

	ctor, _, err := models.Resolve(application, route)
	if err != nil {
		return zero, err
	}
	m, err := ctor(sc)
	if err != nil {
		return zero, fmt.Errorf("construct model %s: %w", route, err)
	}
	typed, ok := m.(T)
	if !ok {
		return zero, fmt.Errorf("%w: model %s is %T, want %T", service.ErrTypeMismatch, route, m, zero)
	}

	sc.Set(key, typed)
	return typed, nil
}
