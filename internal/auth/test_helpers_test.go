package auth

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates a temporary SQLite database with the users schema applied.
// The database file is cleaned up when the test completes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	// Use a temp file so WAL mode works (in-memory doesn't support it)
	f, err := os.CreateTemp("", "auth-test-*.db")
	if err != nil {
		t.Fatalf("creating temp db: %v", err)
	}
	dbPath := f.Name()
	f.Close()
	t.Cleanup(func() { os.Remove(dbPath) })

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=ON")
	if err != nil {
		t.Fatalf("opening test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	migrationSQL := `
		CREATE TABLE users (
			id TEXT PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			roles TEXT NOT NULL DEFAULT '["employee"]',
			is_active INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		) STRICT;

		CREATE INDEX idx_users_username ON users(username);
	`
	if _, err := db.Exec(migrationSQL); err != nil {
		t.Fatalf("applying users schema: %v", err)
	}

	return db
}

// seedTestUser inserts a user with a known password hash directly.
func seedTestUser(t *testing.T, repo UserRepository, username, password string, roles []Role, active bool) *User {
	t.Helper()

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hashing test password: %v", err)
	}

	u := &User{
		Username:     username,
		PasswordHash: hash,
		Roles:        roles,
		Active:       active,
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("creating test user %q: %v", username, err)
	}
	return u
}

// testCodec creates a token codec with a throwaway secret.
func testCodec(t *testing.T, ttl time.Duration) *TokenCodec {
	t.Helper()

	codec, err := NewTokenCodec("test-secret-0123456789abcdef-0123456789abcdef", ttl)
	if err != nil {
		t.Fatalf("NewTokenCodec() error = %v", err)
	}
	return codec
}
