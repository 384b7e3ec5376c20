package route

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// SharedNamespace prefixes type names registered for every application.
const SharedNamespace = "Shared"

// Scope tells which tier a resolved entry came from.
type Scope uint8

const (
	ScopeApplication Scope = iota + 1
	ScopeShared
)

func (s Scope) String() string {
	switch s {
	case ScopeApplication:
		return "application"
	case ScopeShared:
		return "shared"
	default:
		return "none"
	}
}

var factorySanitizer = regexp.MustCompile(`[^a-zA-Z0-9_/]`)

// Factory is an explicit route to value table with two tiers: entries
// registered for a single application and shared entries used as fallback.
// The table is built at startup; a route with no entry is a configuration
// concern checked by Validate.
type Factory[T any] struct {
	kind string

	mu      sync.RWMutex
	entries map[string]T
	names   map[string]struct{}
}

// NewFactory creates an empty table. kind is part of every qualified type
// name ("Controller", "Model").
func NewFactory[T any](kind string) *Factory[T] {
	return &Factory[T]{
		kind:    kind,
		entries: make(map[string]T),
		names:   make(map[string]struct{}),
	}
}

// Register binds v to route for application. An empty application registers
// a shared entry.
func (f *Factory[T]) Register(application, route string, v T) error {
	name := TypeName(route)
	if name == "" {
		return fmt.Errorf("%w: %q", ErrInvalidRoute, route)
	}
	qualified := f.qualify(application, name)

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.entries[qualified]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRoute, qualified)
	}
	f.entries[qualified] = v
	f.names[name] = struct{}{}
	return nil
}

// MustRegister works like Register but panics on error.
func (f *Factory[T]) MustRegister(application, route string, v T) {
	if err := f.Register(application, route, v); err != nil {
		panic(err)
	}
}

// Resolve returns the entry for route, preferring the application tier.
func (f *Factory[T]) Resolve(application, route string) (T, Scope, error) {
	var zero T
	name := TypeName(route)
	if name == "" {
		return zero, 0, fmt.Errorf("%w: %q", ErrInvalidRoute, route)
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	if application != "" {
		if v, ok := f.entries[f.qualify(application, name)]; ok {
			return v, ScopeApplication, nil
		}
	}
	if v, ok := f.entries[f.qualify("", name)]; ok {
		return v, ScopeShared, nil
	}
	return zero, 0, fmt.Errorf("%w: %s %s", ErrNotFound, strings.ToLower(f.kind), route)
}

// Known reports whether route has an entry in any tier.
func (f *Factory[T]) Known(route string) bool {
	name := TypeName(route)
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.names[name]
	return ok
}

// Validate checks that every route has at least one entry.
func (f *Factory[T]) Validate(routes ...string) error {
	for _, r := range routes {
		if !f.Known(r) {
			return fmt.Errorf("%w: %s", ErrUnknownRoute, r)
		}
	}
	return nil
}

// QualifiedName returns the type name route maps to for application.
func (f *Factory[T]) QualifiedName(application, route string) string {
	return f.qualify(application, TypeName(route))
}

func (f *Factory[T]) qualify(application, name string) string {
	ns := SharedNamespace
	if app := factorySanitizer.ReplaceAllString(application, ""); app != "" {
		ns = titleCase(strings.ReplaceAll(app, "/", ""))
	}
	return ns + "." + f.kind + "." + name
}

// TypeName converts a route to its type name: segments split by "/" become
// dot separated, words split by "_" are title cased and joined.
// "account/login_form" becomes "Account.LoginForm".
func TypeName(route string) string {
	route = factorySanitizer.ReplaceAllString(route, "")
	segments := strings.Split(route, "/")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		var b strings.Builder
		for word := range strings.SplitSeq(seg, "_") {
			b.WriteString(titleCase(word))
		}
		if b.Len() > 0 {
			out = append(out, b.String())
		}
	}
	return strings.Join(out, ".")
}

func titleCase(s string) string {
	if s == "" {
		return ""
	}
	// Casers carry state and are not shared across goroutines.
	return cases.Title(language.Und, cases.NoLower).String(s)
}
