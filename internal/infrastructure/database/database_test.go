package database

import (
	"context"
	"path/filepath"
	"testing"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		WALMode:     true,
		BusyTimeout: 5,
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	db, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	if db.Path() != cfg.Path {
		t.Errorf("Path() = %q, want %q", db.Path(), cfg.Path)
	}

	if err := db.HealthCheck(ctx); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
}

func TestOpen_CreatesDirectory(t *testing.T) {
	ctx := context.Background()
	cfg := Config{
		Path:        filepath.Join(t.TempDir(), "nested", "dir", "test.db"),
		BusyTimeout: 5,
	}

	db, err := Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	db.Close()
}

func TestOpen_ForeignKeysEnabled(t *testing.T) {
	ctx := context.Background()

	db, err := Open(ctx, testConfig(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	var enabled int
	if err := db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("querying foreign_keys pragma: %v", err)
	}
	if enabled != 1 {
		t.Error("foreign keys should be enabled")
	}
}

func TestOpen_WALMode(t *testing.T) {
	ctx := context.Background()

	db, err := Open(ctx, testConfig(t))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	var mode string
	if err := db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("querying journal_mode pragma: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
}
