package iocache

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/huangsam/hotelpulse/internal/contract"
	"github.com/huangsam/hotelpulse/schema"
)

type memoryEntry struct {
	value     string
	updatedAt time.Time
}

// MemoryStore is a process-local KVStore used by the none backend and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

var _ contract.KVStore = &MemoryStore{} // Compile-time check

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry), now: time.Now}
}

// GetItem implements the KVStore interface.
func (ms *MemoryStore) GetItem(key string) (string, bool, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	e, ok := ms.entries[key]
	return e.value, ok, nil
}

// SetItem implements the KVStore interface.
func (ms *MemoryStore) SetItem(key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.entries[key] = memoryEntry{value: value, updatedAt: ms.now()}
	return nil
}

// DeleteItem implements the KVStore interface.
func (ms *MemoryStore) DeleteItem(key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.entries, key)
	return nil
}

// Keys implements the KVStore interface.
func (ms *MemoryStore) Keys(prefix string) ([]string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	var keys []string
	for k := range ms.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// GetStatus implements the KVStore interface.
// A memory store reports itself as not connected since nothing is persisted.
func (ms *MemoryStore) GetStatus() (schema.StoreStatus, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	status := schema.StoreStatus{Backend: string(schema.NoneBackend), TotalEntries: len(ms.entries)}
	for _, e := range ms.entries {
		if status.LastEntryTime.IsZero() || e.updatedAt.After(status.LastEntryTime) {
			status.LastEntryTime = e.updatedAt
		}
		if status.OldestEntryTime.IsZero() || e.updatedAt.Before(status.OldestEntryTime) {
			status.OldestEntryTime = e.updatedAt
		}
	}
	return status, nil
}

// Close implements the KVStore interface.
func (ms *MemoryStore) Close() error {
	return nil
}
