package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileRepository keeps every entry in one JSON object on disk. Writes replace
// the file through a temp file and rename.
type FileRepository struct {
	mu   sync.Mutex
	path string
}

func NewFileRepository(path string) (*FileRepository, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("storage: empty file path")
	}
	return &FileRepository{path: trimmed}, nil
}

func (r *FileRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries, err := r.read()
	if err != nil {
		return "", err
	}
	value, ok := entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (r *FileRepository) Put(_ context.Context, entries ...Entry) error {
	if len(entries) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	current, err := r.read()
	if err != nil {
		return err
	}
	for _, e := range entries {
		current[e.Key] = e.Value
	}
	return r.write(current)
}

func (r *FileRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, err := r.read()
	if err != nil {
		return err
	}
	if _, ok := current[key]; !ok {
		return ErrNotFound
	}
	delete(current, key)
	return r.write(current)
}

func (r *FileRepository) Close() error { return nil }

func (r *FileRepository) read() (map[string]string, error) {
	out := make(map[string]string)
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.path, err)
	}
	return out, nil
}

func (r *FileRepository) write(entries map[string]string) error {
	dir := filepath.Dir(r.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}
