package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileRepositoryPersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "guia.json")
	ctx := context.Background()

	first, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("new file repo: %v", err)
	}
	if err := first.Put(ctx, Entry{Key: KeyTasks, Value: "[]"}, Entry{Key: KeySheetURL, Value: "https://example.com"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file to be renamed away, stat err: %v", err)
	}

	second, err := NewFileRepository(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err := second.Get(ctx, KeySheetURL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "https://example.com" {
		t.Fatalf("unexpected url %q", got)
	}
	if err := second.Delete(ctx, KeySheetURL); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := second.Get(ctx, KeySheetURL); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestFileRepositoryMissingFileIsEmpty(t *testing.T) {
	repo, err := NewFileRepository(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("new file repo: %v", err)
	}
	if _, err := repo.Get(context.Background(), KeyTasks); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		backend string
		want    string
	}{
		{BackendSQLite, "*storage.SQLiteRepository"},
		{BackendFile, "*storage.FileRepository"},
		{BackendMemory, "*storage.MemoryRepository"},
	}
	for _, tc := range cases {
		repo, err := Open(tc.backend, filepath.Join(dir, tc.backend+".data"))
		if err != nil {
			t.Fatalf("open %s: %v", tc.backend, err)
		}
		if got := typeName(repo); got != tc.want {
			t.Fatalf("open %s returned %s, want %s", tc.backend, got, tc.want)
		}
		_ = repo.Close()
	}
	if _, err := Open("redis", filepath.Join(dir, "x")); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func typeName(v any) string {
	switch v.(type) {
	case *SQLiteRepository:
		return "*storage.SQLiteRepository"
	case *FileRepository:
		return "*storage.FileRepository"
	case *MemoryRepository:
		return "*storage.MemoryRepository"
	default:
		return "unknown"
	}
}
