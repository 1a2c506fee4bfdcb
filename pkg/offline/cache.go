package offline

import (
	"encoding/json"
	"sync"
)

// CacheStore is the persistent cache consumed by controllers. Implementations
// own schema versioning: a version mismatch or decode failure is reported as a
// plain miss, never an error, and the cache is free to drop the bad entry.
// Store failures must be absorbed by the implementation; the cache is an
// optimization, not a source of truth.
type CacheStore interface {
	// Load decodes the entry for key into dst and reports whether a valid
	// entry existed.
	Load(key string, dst any) bool
	// Store replaces the entry for key with v.
	Store(key string, v any)
	// Clear removes the entry for key.
	Clear(key string)
	// ClearAll removes every entry.
	ClearAll()
}

// MemoryCache is an in-process CacheStore holding JSON-serialized payloads.
// It exists for tests and for embedding the controllers without a persistent
// store; entries do not survive the process.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string][]byte)}
}

func (m *MemoryCache) Load(key string, dst any) bool {
	m.mu.Lock()
	data, ok := m.entries[key]
	m.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

func (m *MemoryCache) Store(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	m.mu.Lock()
	m.entries[key] = data
	m.mu.Unlock()
}

func (m *MemoryCache) Clear(key string) {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
}

func (m *MemoryCache) ClearAll() {
	m.mu.Lock()
	m.entries = make(map[string][]byte)
	m.mu.Unlock()
}
