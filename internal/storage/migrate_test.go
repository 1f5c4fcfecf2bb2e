package storage

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := MigrateUp(db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if v, err := SchemaVersion(db); err != nil || v != 1 {
		t.Fatalf("schema version after up = %d, %v; want 1", v, err)
	}

	if err := MigrateDown(db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if v, err := SchemaVersion(db); err != nil || v != 0 {
		t.Fatalf("schema version after down = %d, %v; want 0", v, err)
	}

	if err := MigrateUp(db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}

	if err := repo.Put(t.Context(), Entry{Key: KeySheetURL, Value: "https://example.com/sheet"}); err != nil {
		t.Fatalf("put after roundtrip failed: %v", err)
	}

	got, err := repo.Get(t.Context(), KeySheetURL)
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if got != "https://example.com/sheet" {
		t.Fatalf("unexpected value after roundtrip: %q", got)
	}
}

func TestMigrateUpIsIdempotent(t *testing.T) {
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "twice.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	for i := 0; i < 2; i++ {
		if err := MigrateUp(db); err != nil {
			t.Fatalf("migrate up #%d: %v", i+1, err)
		}
	}
	if v, err := SchemaVersion(db); err != nil || v != 1 {
		t.Fatalf("schema version = %d, %v; want 1", v, err)
	}
}

func TestLoadMigrationsPairsScripts(t *testing.T) {
	migrations, err := loadMigrations()
	if err != nil {
		t.Fatalf("load migrations: %v", err)
	}
	if len(migrations) != 1 {
		t.Fatalf("expected 1 migration, got %d", len(migrations))
	}
	m := migrations[0]
	if m.version != 1 || m.name != "0001_kv" || m.up == "" || m.down == "" {
		t.Fatalf("unexpected migration %+v", m)
	}
}
