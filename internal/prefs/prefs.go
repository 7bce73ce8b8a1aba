// Package prefs provides the durable key/value store holding the visitor's
// language and theme preferences.
package prefs

import (
	"sync"
)

// Keys persisted by the site.
const (
	LanguageKey = "language"
	ThemeKey    = "theme"
)

// Store is a small string key/value store with get/set semantics.
type Store interface {
	// Get returns the stored value and whether it was present.
	Get(key string) (string, bool)
	// Set stores value under key.
	Set(key, value string) error
}

// GetOr returns the stored value for key, or fallback when absent or empty.
func GetOr(s Store, key, fallback string) string {
	if s == nil {
		return fallback
	}
	if v, ok := s.Get(key); ok && v != "" {
		return v
	}
	return fallback
}

// MemoryStore keeps preferences in memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get implements Store.
func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Set implements Store.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
