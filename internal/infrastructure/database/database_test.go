package database

import (
	"context"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesFileAndDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "test.db")

	db, err := Open(context.Background(), Config{
		Path:        path,
		WALMode:     true,
		BusyTimeout: 1,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if db.Path() != path {
		t.Errorf("Path() = %q, want %q", db.Path(), path)
	}

	if err := db.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestOpen_ForeignKeysEnabled(t *testing.T) {
	db, err := Open(context.Background(), Config{
		Path:        filepath.Join(t.TempDir(), "fk.db"),
		BusyTimeout: 1,
	})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	var enabled int
	if err := db.QueryRowContext(context.Background(), "PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("querying foreign_keys pragma: %v", err)
	}
	if enabled != 1 {
		t.Error("foreign keys should be enabled")
	}
}

func TestClose_Idempotent(t *testing.T) {
	db := &DB{}
	if err := db.Close(); err != nil {
		t.Errorf("Close() on nil DB = %v, want nil", err)
	}
}

func TestParseMigrationFilename(t *testing.T) {
	tests := []struct {
		filename    string
		wantVersion string
		wantName    string
		wantUp      bool
		wantOK      bool
	}{
		{"001_initial_schema.up.sql", "001", "initial_schema", true, true},
		{"001_initial_schema.down.sql", "001", "initial_schema", false, true},
		{"002_add_index.up.sql", "002", "add_index", true, true},
		{"readme.md", "", "", false, false},
		{"nosuffix.sql", "", "", false, false},
		{"_x.up.sql", "", "", false, false},
	}

	for _, tt := range tests {
		version, name, isUp, ok := parseMigrationFilename(tt.filename)
		if ok != tt.wantOK {
			t.Errorf("%s: ok = %v, want %v", tt.filename, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if version != tt.wantVersion || name != tt.wantName || isUp != tt.wantUp {
			t.Errorf("%s: got (%q, %q, %v), want (%q, %q, %v)",
				tt.filename, version, name, isUp, tt.wantVersion, tt.wantName, tt.wantUp)
		}
	}
}
