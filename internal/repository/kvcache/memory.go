package kvcache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryStore keeps entries in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

func (that *MemoryStore) Get(_ context.Context, key string) (string, error) {
	that.mu.RLock()
	entry, ok := that.entries[key]
	that.mu.RUnlock()

	if !ok {
		return "", ErrNotFound
	}

	if !that.now().Before(entry.expiresAt) {
		that.mu.Lock()
		if current, exists := that.entries[key]; exists && current.expiresAt.Equal(entry.expiresAt) {
			delete(that.entries, key)
		}
		that.mu.Unlock()
		return "", ErrNotFound
	}

	return entry.value, nil
}

func (that *MemoryStore) Put(_ context.Context, key string, value string, ttl time.Duration) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.entries[key] = memoryEntry{value: value, expiresAt: that.now().Add(ttl)}
	return nil
}
