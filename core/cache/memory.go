package cache

import (
	"context"
	"sync"
	"time"
)

const (
	// DefaultMaxEntries bounds a memory cache built without a limit.
	DefaultMaxEntries = 10000

	sweepEvery = time.Minute
)

type memoryEntry struct {
	value   []byte
	expires time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// Memory is an in-process Cache. Expired entries are swept on writes, and
// when the cache is full the entry closest to expiry is evicted.
type Memory struct {
	mu         sync.RWMutex
	entries    map[string]memoryEntry
	maxEntries int
	nextSweep  time.Time
	now        func() time.Time
}

// NewMemory creates an empty in-process cache holding DefaultMaxEntries.
func NewMemory() *Memory {
	return NewMemoryWithLimit(DefaultMaxEntries)
}

// NewMemoryWithLimit creates an empty in-process cache holding at most max
// entries.
func NewMemoryWithLimit(max int) *Memory {
	if max <= 0 {
		max = DefaultMaxEntries
	}
	return &Memory{
		entries:    make(map[string]memoryEntry),
		maxEntries: max,
		now:        time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if entry.expired(m.now()) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	now := m.now()
	entry := memoryEntry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		entry.expires = now.Add(ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if !now.Before(m.nextSweep) {
		m.sweepLocked(now)
	}
	if _, exists := m.entries[key]; !exists && len(m.entries) >= m.maxEntries {
		m.sweepLocked(now)
		if len(m.entries) >= m.maxEntries {
			m.evictLocked()
		}
	}
	m.entries[key] = entry
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Memory) sweepLocked(now time.Time) {
	for k, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, k)
		}
	}
	m.nextSweep = now.Add(sweepEvery)
}

// evictLocked drops the entry expiring first. Entries without expiry go last.
func (m *Memory) evictLocked() {
	var (
		victim string
		soon   time.Time
		found  bool
	)
	for k, e := range m.entries {
		if !found {
			victim, soon, found = k, e.expires, true
			continue
		}
		if soon.IsZero() || (!e.expires.IsZero() && e.expires.Before(soon)) {
			victim, soon = k, e.expires
		}
	}
	if found {
		delete(m.entries, victim)
	}
}
