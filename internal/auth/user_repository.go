package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UserRepository is the credential store contract the session core
// consumes: lookup by username plus the minimum needed for provisioning.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByUsername(ctx context.Context, username string) (*User, error)
	Count(ctx context.Context) (int, error)
}

// SQLiteUserRepository implements UserRepository using SQLite.
type SQLiteUserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new SQLite-backed user repository.
func NewUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

// Create inserts a new user account. The ID is generated if empty, and an
// account with no roles is given the baseline employee role.
func (r *SQLiteUserRepository) Create(ctx context.Context, user *User) error {
	if !IsValidUsername(user.Username) {
		return ErrInvalidUsername
	}
	if user.ID == "" {
		user.ID = "usr-" + uuid.NewString()[:8]
	}
	if len(user.Roles) == 0 {
		user.Roles = []Role{RoleEmployee}
	}

	rolesJSON, err := json.Marshal(user.Roles)
	if err != nil {
		return fmt.Errorf("encoding roles: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	user.CreatedAt, _ = time.Parse(time.RFC3339, now)
	user.UpdatedAt = user.CreatedAt

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, roles, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.PasswordHash, string(rolesJSON),
		boolToInt(user.Active), now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameExists
		}
		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

// GetByUsername retrieves a user by their unique username.
func (r *SQLiteUserRepository) GetByUsername(ctx context.Context, username string) (*User, error) {
	var u User
	var rolesJSON string
	var isActive int
	var createdAt, updatedAt string

	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, roles, is_active, created_at, updated_at
		 FROM users WHERE username = ?`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &rolesJSON, &isActive, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	if err := json.Unmarshal([]byte(rolesJSON), &u.Roles); err != nil {
		return nil, fmt.Errorf("decoding roles for %s: %w", u.ID, err)
	}
	u.Active = isActive != 0
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	u.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)

	return &u, nil
}

// Count returns the number of user accounts.
func (r *SQLiteUserRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

// Helper functions.

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "unique constraint"))
}
