package storage

import "sync"

// MemoryStore keeps values in process memory.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (store *MemoryStore) Get(key string) (string, bool, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	value, ok := store.values[key]
	return value, ok, nil
}

func (store *MemoryStore) Set(key, value string) error {
	store.mu.Lock()
	store.values[key] = value
	store.mu.Unlock()
	return nil
}

func (store *MemoryStore) Delete(key string) error {
	store.mu.Lock()
	delete(store.values, key)
	store.mu.Unlock()
	return nil
}
