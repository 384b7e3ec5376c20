package pg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/spindle/pkg/logger"
)

// DefaultConnection is the name of the primary connection.
const DefaultConnection = "default"

// Manager owns a set of named connection pools. Pools are opened on first
// use; concurrent first users share a single dial.
type Manager struct {
	configs map[string]Config
	log     *slog.Logger

	mu     sync.RWMutex
	pools  map[string]*pgxpool.Pool
	closed bool
	group  singleflight.Group
}

type ManagerOption func(*Manager)

func WithLogger(log *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// NewManager creates a manager for the named configurations. Nothing is
// dialled until Pool is called.
func NewManager(configs map[string]Config, opts ...ManagerOption) *Manager {
	m := &Manager{
		configs: maps.Clone(configs),
		pools:   make(map[string]*pgxpool.Pool),
		log:     slog.New(slog.DiscardHandler),
	}
	if m.configs == nil {
		m.configs = make(map[string]Config)
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.With(logger.Component("pg"))
	return m
}

// Names returns the configured connection names, sorted.
func (m *Manager) Names() []string {
	return slices.Sorted(maps.Keys(m.configs))
}

// Pool returns the pool for name, connecting it if needed. The dial is
// detached from ctx cancellation so that one impatient caller does not fail
// the others waiting on the same dial.
func (m *Manager) Pool(ctx context.Context, name string) (*pgxpool.Pool, error) {
	cfg, ok := m.configs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConnection, name)
	}

	m.mu.RLock()
	pool, ok := m.pools[name]
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return nil, ErrManagerClosed
	}
	if ok {
		return pool, nil
	}

	ch := m.group.DoChan(name, func() (any, error) {
		m.mu.RLock()
		existing, ok := m.pools[name]
		m.mu.RUnlock()
		if ok {
			return existing, nil
		}

		pool, err := Connect(context.WithoutCancel(ctx), cfg)
		if err != nil {
			m.log.ErrorContext(ctx, "connection failed", slog.String("connection", name), logger.Error(err))
			return nil, err
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		if m.closed {
			pool.Close()
			return nil, ErrManagerClosed
		}
		m.pools[name] = pool
		m.log.InfoContext(ctx, "connection opened", slog.String("connection", name))
		return pool, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*pgxpool.Pool), nil
	}
}

// WithConn checks out a connection from the named pool for the duration of
// fn. The connection is released on every path, including panics in fn.
func (m *Manager) WithConn(ctx context.Context, name string, fn func(context.Context, *pgxpool.Conn) error) error {
	pool, err := m.Pool(ctx, name)
	if err != nil {
		return err
	}
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return errors.Join(ErrFailedToOpenDBConnection, err)
	}
	defer conn.Release()
	return fn(ctx, conn)
}

// Healthcheck pings every pool that is already open. Unopened connections
// are not dialled by the probe.
func (m *Manager) Healthcheck() func(context.Context) error {
	return func(ctx context.Context) error {
		m.mu.RLock()
		pools := maps.Clone(m.pools)
		m.mu.RUnlock()

		var errs []error
		for _, name := range slices.Sorted(maps.Keys(pools)) {
			if err := pools[name].Ping(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%w: %s: %w", ErrHealthcheckFailed, name, err))
			}
		}
		return errors.Join(errs...)
	}
}

// Close closes every open pool. Pool fails afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	for name, pool := range m.pools {
		pool.Close()
		delete(m.pools, name)
	}
}
