package config

import (
	"strings"
	"sync"
)

// ── Map provider ──────────────────────────────────────────────────────────────

// Map is an in-memory config provider over a nested map, addressed by dotted
// paths ("section.key"). It satisfies the container's ConfigProvider
// contract and is handy for tests and programmatic configuration.
type Map struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewMap wraps values (which may be nil) in a Map provider.
func NewMap(values map[string]any) *Map {
	if values == nil {
		values = make(map[string]any)
	}
	return &Map{values: values}
}

// Get returns the value at the dotted name, falling back to placeholder when
// the path is absent, coerced per the format tag.
func (m *Map) Get(name, placeholder, format string) (any, error) {
	m.mu.RLock()
	v, ok := m.lookup(name)
	m.mu.RUnlock()

	if !ok {
		return coerce(placeholder, format)
	}
	return coerce(v, format)
}

// Set stores a value at the dotted name, creating intermediate sections as
// needed. A scalar in the middle of the path is replaced by a section.
func (m *Map) Set(name string, value any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	segments := strings.Split(name, ".")
	current := m.values
	for i, seg := range segments {
		if i == len(segments)-1 {
			current[seg] = value
			return
		}
		next, ok := current[seg].(map[string]any)
		if !ok {
			next = make(map[string]any)
			current[seg] = next
		}
		current = next
	}
}

// lookup walks the nested map. Caller must hold mu.
func (m *Map) lookup(name string) (any, bool) {
	var current any = m.values
	for _, seg := range strings.Split(name, ".") {
		section, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = section[seg]
		if !ok {
			return nil, false
		}
	}
	return current, true
}
