package support

import (
	"sync"
	"time"
)

// IdleMap holds per-key state created on first use. Entries untouched for ttl are dropped, and
// once maxEntries is reached the least recently seen entry makes room for a new one.
type IdleMap[V any] struct {
	mu         sync.Mutex
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	entries    map[string]*idleEntry[V]
}

type idleEntry[V any] struct {
	value    *V
	lastSeen time.Time
}

func NewIdleMap[V any](ttl time.Duration, maxEntries int) *IdleMap[V] {
	return &IdleMap[V]{
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
		entries:    make(map[string]*idleEntry[V]),
	}
}

// SetClock replaces time.Now.
func (m *IdleMap[V]) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Touch returns the value for key, creating a zero value when absent or expired.
func (m *IdleMap[V]) Touch(key string) *V {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	if e, ok := m.live(key, now); ok {
		e.lastSeen = now
		return e.value
	}
	m.evictIdle(now)
	if m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
		m.evictOldest()
	}
	e := &idleEntry[V]{value: new(V), lastSeen: now}
	m.entries[key] = e
	return e.value
}

// Get returns the value for key without creating one.
func (m *IdleMap[V]) Get(key string) (*V, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	e, ok := m.live(key, now)
	if !ok {
		return nil, false
	}
	e.lastSeen = now
	return e.value, true
}

func (m *IdleMap[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *IdleMap[V]) live(key string, now time.Time) (*idleEntry[V], bool) {
	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if m.expired(e, now) {
		delete(m.entries, key)
		return nil, false
	}
	return e, true
}

func (m *IdleMap[V]) expired(e *idleEntry[V], now time.Time) bool {
	return m.ttl > 0 && now.Sub(e.lastSeen) > m.ttl
}

func (m *IdleMap[V]) evictIdle(now time.Time) {
	for key, e := range m.entries {
		if m.expired(e, now) {
			delete(m.entries, key)
		}
	}
}

func (m *IdleMap[V]) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for key, e := range m.entries {
		if oldestKey == "" || e.lastSeen.Before(oldest) {
			oldestKey, oldest = key, e.lastSeen
		}
	}
	delete(m.entries, oldestKey)
}
