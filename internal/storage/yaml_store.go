package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// StateFileName is the YAMLStore file name inside the data directory.
const StateFileName = "state.yaml"

// YAMLStore keeps all keys in a single YAML map file.
type YAMLStore struct {
	mu   sync.Mutex
	path string
}

// NewYAMLStore returns a store backed by the file at path. The file is
// created on the first write.
func NewYAMLStore(path string) *YAMLStore {
	return &YAMLStore{path: path}
}

// Path returns the backing file path.
func (store *YAMLStore) Path() string {
	return store.path
}

func (store *YAMLStore) Get(key string) (string, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, err := store.readLocked()
	if err != nil {
		return "", false, wrapOpErr("get", key, err)
	}
	value, ok := values[key]
	return value, ok, nil
}

func (store *YAMLStore) Set(key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, err := store.readLocked()
	if err != nil {
		return wrapOpErr("set", key, err)
	}
	values[key] = value
	return wrapOpErr("set", key, store.writeLocked(values))
}

func (store *YAMLStore) Delete(key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	values, err := store.readLocked()
	if err != nil {
		return wrapOpErr("delete", key, err)
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return wrapOpErr("delete", key, store.writeLocked(values))
}

func (store *YAMLStore) readLocked() (map[string]string, error) {
	values := make(map[string]string)
	rawData, err := os.ReadFile(store.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("read state file: %w", err)
	}
	if err := yaml.Unmarshal(rawData, &values); err != nil {
		return nil, fmt.Errorf("parse state yaml: %w", err)
	}
	if values == nil {
		values = make(map[string]string)
	}
	return values, nil
}

func (store *YAMLStore) writeLocked(values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(store.path), 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	serialized, err := yaml.Marshal(values)
	if err != nil {
		return fmt.Errorf("marshal state yaml: %w", err)
	}

	tmp := store.path + ".tmp"
	if err := os.WriteFile(tmp, serialized, 0o644); err != nil {
		return fmt.Errorf("write state file: %w", err)
	}
	if err := os.Rename(tmp, store.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}
