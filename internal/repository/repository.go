// Package repository loads per-application settings and event listener
// registrations. Rows with an empty application are shared by every
// application; application rows override shared ones.
package repository

import (
	"context"
	"errors"
)

// ErrUnavailable wraps failures of the backing database.
var ErrUnavailable = errors.New("repository.unavailable")

// Event is a stored listener registration.
type Event struct {
	Trigger  string `db:"trigger"`
	Route    string `db:"route"`
	Priority int    `db:"priority"`
}

// Settings returns the effective key/value settings of an application.
type Settings interface {
	Settings(ctx context.Context, application string) (map[string]string, error)
}

// Events returns the enabled listener registrations of an application,
// ordered by priority.
type Events interface {
	Events(ctx context.Context, application string) ([]Event, error)
}
