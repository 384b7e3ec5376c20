package service

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Well-known keys used by the request pipeline.
const (
	KeyApplication = "application"
	KeyResolver    = "resolver"
	KeyModels      = "models"
	KeyEvents      = "event"
	KeySession     = "session"
	KeyCSRF        = "csrf"
	KeyConfig      = "config"
	KeyDB          = "db"
	KeyLogger      = "logger"
	KeyRequest     = "request"
)

// Container is a keyed store of singleton services for the lifetime of one
// request. Components read and write services through it instead of via
// global state.
type Container struct {
	mu      sync.RWMutex
	entries map[string]any
}

// New creates an empty container, optionally seeded with entries.
func New(seed map[string]any) *Container {
	c := &Container{entries: make(map[string]any, len(seed))}
	maps.Copy(c.entries, seed)
	return c
}

// Set stores a service under key, replacing any previous value.
func (c *Container) Set(key string, v any) {
	c.mu.Lock()
	c.entries[key] = v
	c.mu.Unlock()
}

// Get returns the service stored under key.
func (c *Container) Get(key string) (any, error) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, key)
	}
	return v, nil
}

// Has reports whether a service is stored under key.
func (c *Container) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

// Delete removes the service stored under key.
func (c *Container) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Keys returns the registered keys in sorted order.
func (c *Container) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.entries))
}

// Get retrieves a typed service from the container.
//
// Example:
//
//	sess, err := service.Get[*session.Session](sc, service.KeySession)
//	if err != nil {
//		return route.Fail(err)
//	}
func Get[T any](c *Container, key string) (T, error) {
	var zero T
	v, err := c.Get(key)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %q holds %T, want %T", ErrTypeMismatch, key, v, zero)
	}
	return typed, nil
}

// MustGet works like Get but panics if the service is missing.
// Use it only for services the pipeline always registers.
func MustGet[T any](c *Container, key string) T {
	v, err := Get[T](c, key)
	if err != nil {
		panic(err)
	}
	return v
}
