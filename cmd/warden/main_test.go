package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestRun_InvalidConfig verifies run fails with invalid config path.
func TestRun_InvalidConfig(t *testing.T) {
	t.Setenv("WARDEN_CONFIG", "/nonexistent/path/config.yaml")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail with invalid config path")
	}
}

// TestRun_MissingSecrets verifies run fails when signing secrets are absent.
func TestRun_MissingSecrets(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
database:
  path: "` + filepath.Join(tmpDir, "test.db") + `"
logging:
  level: info
  format: text
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("WARDEN_CONFIG", configPath)
	t.Setenv("WARDEN_ACCESS_SECRET", "")
	t.Setenv("WARDEN_RENEWAL_SECRET", "")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := run(ctx); err == nil {
		t.Fatal("run() should fail without signing secrets")
	}
}

// TestRun_StartupAndShutdown runs the full service briefly and lets the
// context cancel it.
func TestRun_StartupAndShutdown(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test-config.yaml")

	configContent := `
database:
  path: "` + filepath.Join(tmpDir, "test.db") + `"
  wal_mode: true
  busy_timeout: 5

api:
  host: "127.0.0.1"
  port: 18931

logging:
  level: error
  format: text
  output: stdout
`
	if err := os.WriteFile(configPath, []byte(configContent), 0600); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("WARDEN_CONFIG", configPath)
	t.Setenv("WARDEN_ACCESS_SECRET", strings.Repeat("a", 32))
	t.Setenv("WARDEN_RENEWAL_SECRET", strings.Repeat("b", 32))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := run(ctx); err != nil {
		t.Fatalf("run() error = %v", err)
	}
}

// TestGetConfigPath_Default verifies default config path.
func TestGetConfigPath_Default(t *testing.T) {
	t.Setenv("WARDEN_CONFIG", "")

	if path := getConfigPath(); path != defaultConfigPath {
		t.Errorf("getConfigPath() = %q, want %q", path, defaultConfigPath)
	}
}

// TestGetConfigPath_EnvOverride verifies environment variable override.
func TestGetConfigPath_EnvOverride(t *testing.T) {
	expected := "/custom/path/config.yaml"
	t.Setenv("WARDEN_CONFIG", expected)

	if path := getConfigPath(); path != expected {
		t.Errorf("getConfigPath() = %q, want %q", path, expected)
	}
}
