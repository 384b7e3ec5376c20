package session

import (
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// FingerprintFunc computes the client fingerprint bound to a session.
type FingerprintFunc func(r *http.Request) string

// WithConfig sets custom configuration
func WithConfig(cfg Config) Option {
	return func(m *Manager) {
		m.config = cfg
	}
}

// WithCookieName sets the main session cookie name
func WithCookieName(name string) Option {
	return func(m *Manager) {
		m.config.CookieName = name
	}
}

// WithTimeouts sets the main idle timeout and the lazy tier lifetime.
func WithTimeouts(timeout, lazy time.Duration) Option {
	return func(m *Manager) {
		m.config.Timeout = timeout
		m.config.LazyTimeout = lazy
	}
}

// WithWriteThrough toggles persisting the main record on every change.
func WithWriteThrough(enabled bool) Option {
	return func(m *Manager) {
		m.config.WriteThrough = enabled
	}
}

// WithFingerprint sets the fingerprint function
func WithFingerprint(fn FingerprintFunc) Option {
	return func(m *Manager) {
		m.fingerprint = fn
	}
}

// WithClock replaces time.Now for expiry decisions.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithRandom replaces the source of session ids and tokens.
func WithRandom(r io.Reader) Option {
	return func(m *Manager) {
		m.random = r
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}
