// Package kv provides the key-value stores the task list is persisted to.
package kv

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	MEMORY = "memory"
	FILE   = "file"
	SQLITE = "sqlite"
)

// Store is a string key-value store.
type Store interface {
	// Get returns the value stored under key. ok is false if the key was
	// never set.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Close() error
}

// Open opens the backend named by backend at path. path is ignored by the
// memory backend.
func Open(backend, path string) (Store, error) {
	switch strings.ToLower(backend) {
	case MEMORY:
		return NewMemory(), nil
	case FILE, "":
		return OpenFile(expandHome(path))
	case SQLITE:
		return OpenSQLite(expandHome(path))
	}
	return nil, fmt.Errorf("unknown storage backend '%s'", backend)
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
