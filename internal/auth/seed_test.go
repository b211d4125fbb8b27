package auth

import (
	"context"
	"log/slog"
	"testing"
)

func TestSeedAdmin_CreatesOnEmptyDB(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	logger := slog.Default()
	ctx := context.Background()

	password, err := SeedAdmin(ctx, repo, logger)
	if err != nil {
		t.Fatalf("SeedAdmin() error = %v", err)
	}

	if password == "" {
		t.Fatal("SeedAdmin() should return generated password")
	}

	// Verify admin was created
	admin, err := repo.GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatalf("GetByUsername(admin) error = %v", err)
	}

	if !admin.HasRole(RoleAdmin) {
		t.Errorf("Roles = %v, want admin included", admin.Roles)
	}

	if !admin.Active {
		t.Error("seed admin should be active")
	}

	// Verify password works
	ok, err := VerifyPassword(password, admin.PasswordHash)
	if err != nil {
		t.Fatalf("VerifyPassword() error = %v", err)
	}
	if !ok {
		t.Error("generated password should verify against stored hash")
	}
}

func TestSeedAdmin_SkipsWhenUsersExist(t *testing.T) {
	repo := NewUserRepository(testDB(t))
	logger := slog.Default()
	ctx := context.Background()

	seedTestUser(t, repo, "existing", "pw", []Role{RoleEmployee}, true)

	password, err := SeedAdmin(ctx, repo, logger)
	if err != nil {
		t.Fatalf("SeedAdmin() error = %v", err)
	}
	if password != "" {
		t.Error("SeedAdmin() should skip when users exist")
	}

	if _, err := repo.GetByUsername(ctx, "admin"); err == nil {
		t.Error("no admin account should be created when users exist")
	}
}
