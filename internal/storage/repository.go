package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrNotFound = errors.New("storage: not found")

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

// Repository is a flat string key-value store. Put applies all entries or
// none of them.
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, entries ...Entry) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Stamper is implemented by repositories that record when a key was last
// written.
type Stamper interface {
	UpdatedAt(ctx context.Context, key string) (time.Time, error)
}

// Open returns the repository for backend, creating and migrating it on
// first use.
func Open(backend, path string) (Repository, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendSQLite:
		return OpenSQLite(path)
	case BackendFile:
		return NewFileRepository(path)
	case BackendMemory:
		return NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
