package repository

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
)

// Memory implements Settings and Events in process memory.
type Memory struct {
	mu       sync.RWMutex
	settings map[string]map[string]string
	events   map[string][]Event
}

func NewMemory() *Memory {
	return &Memory{
		settings: make(map[string]map[string]string),
		events:   make(map[string][]Event),
	}
}

// SetSetting stores a setting. An empty application makes it shared.
func (m *Memory) SetSetting(application, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings[application] == nil {
		m.settings[application] = make(map[string]string)
	}
	m.settings[application][key] = value
}

// AddEvent stores a listener registration. An empty application makes it shared.
func (m *Memory) AddEvent(application string, e Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[application] = append(m.events[application], e)
}

func (m *Memory) Settings(_ context.Context, application string) (map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := maps.Clone(m.settings[""])
	if out == nil {
		out = make(map[string]string)
	}
	if application != "" {
		maps.Copy(out, m.settings[application])
	}
	return out, nil
}

func (m *Memory) Events(_ context.Context, application string) ([]Event, error) {
	m.mu.RLock()
	out := slices.Clone(m.events[""])
	if application != "" {
		out = append(out, m.events[application]...)
	}
	m.mu.RUnlock()

	slices.SortStableFunc(out, func(x, y Event) int { return cmp.Compare(x.Priority, y.Priority) })
	return out, nil
}
