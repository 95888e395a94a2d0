package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"countdown/internal/ui/preferences"
)

// OpenStore opens the named backend inside dataDir. The returned closer
// releases backend resources and is never nil.
func OpenStore(backend, dataDir string) (Store, io.Closer, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data directory: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(backend)) {
	case preferences.BackendYAML, "":
		return NewYAMLStore(filepath.Join(dataDir, StateFileName)), nopCloser{}, nil
	case preferences.BackendSQLite:
		store, err := OpenSQLiteStore(filepath.Join(dataDir, DatabaseFileName))
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
