package httpserver

import (
	"log/slog"
	"time"
)

// Option configures the HTTP server. Empty or non-positive values keep the
// current setting, so options can be fed straight from a Config.
type Option func(*config)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(c *config) {
		if addr != "" {
			c.addr = addr
		}
	}
}

func WithReadTimeout(d time.Duration) Option {
	return func(c *config) { setDuration(&c.readTimeout, d) }
}

func WithWriteTimeout(d time.Duration) Option {
	return func(c *config) { setDuration(&c.writeTimeout, d) }
}

// WithIdleTimeout bounds the wait for the next request on a keep-alive connection.
func WithIdleTimeout(d time.Duration) Option {
	return func(c *config) { setDuration(&c.idleTimeout, d) }
}

// WithShutdownTimeout bounds graceful shutdown.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *config) { setDuration(&c.shutdownTimeout, d) }
}

// WithLogger sets the logger for lifecycle messages and server errors.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStartHook registers a callback run once the listener is open.
func WithStartHook(h func(*slog.Logger)) Option {
	return func(c *config) {
		if h != nil {
			c.startHooks = append(c.startHooks, h)
		}
	}
}

// WithStopHook registers a callback run after shutdown.
func WithStopHook(h func(*slog.Logger)) Option {
	return func(c *config) {
		if h != nil {
			c.stopHooks = append(c.stopHooks, h)
		}
	}
}

func setDuration(dst *time.Duration, d time.Duration) {
	if d > 0 {
		*dst = d
	}
}
