package api

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/wardenlabs/warden/internal/audit"
	"github.com/wardenlabs/warden/internal/auth"
	"github.com/wardenlabs/warden/internal/infrastructure/config"
	"github.com/wardenlabs/warden/internal/infrastructure/logging"
)

// Test credentials shared by the API tests. The hash is computed once per
// process because argon2id hashing is expensive.
const (
	testUsername = "alice"
	testPassword = "correct-horse-battery-staple"
)

var testPasswordHash string

func passwordHash(t *testing.T) string {
	t.Helper()
	if testPasswordHash == "" {
		hash, err := auth.HashPassword(testPassword)
		if err != nil {
			t.Fatalf("hashing test password: %v", err)
		}
		testPasswordHash = hash
	}
	return testPasswordHash
}

// stubUsers is an in-memory auth.UserRepository.
type stubUsers struct {
	users map[string]*auth.User
}

func (r *stubUsers) Create(_ context.Context, user *auth.User) error {
	r.users[user.Username] = user
	return nil
}

func (r *stubUsers) GetByUsername(_ context.Context, username string) (*auth.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUsers) Count(_ context.Context) (int, error) {
	return len(r.users), nil
}

// memAudit records audit events in memory.
type memAudit struct {
	events []audit.Event
}

func (m *memAudit) Create(_ context.Context, event *audit.Event) error {
	m.events = append(m.events, *event)
	return nil
}

func (m *memAudit) List(_ context.Context, filter audit.Filter) (*audit.ListResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}

	matched := []audit.Event{}
	for _, e := range m.events {
		if filter.Action != "" && e.Action != filter.Action {
			continue
		}
		if filter.Username != "" && e.Username != filter.Username {
			continue
		}
		matched = append(matched, e)
	}

	return &audit.ListResult{
		Events: matched,
		Total:  len(matched),
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

func (m *memAudit) lastAction() string {
	if len(m.events) == 0 {
		return ""
	}
	return m.events[len(m.events)-1].Action
}

// testEnv bundles a server, its router, and the backing stubs.
type testEnv struct {
	server *Server
	router http.Handler
	users  *stubUsers
	audit  *memAudit
}

// testSecurityConfig mirrors the production defaults with test secrets.
func testSecurityConfig() config.SecurityConfig {
	return config.SecurityConfig{
		Tokens: config.TokenConfig{
			AccessSecret:  strings.Repeat("a", 32),
			RenewalSecret: strings.Repeat("b", 32),
			AccessTTL:     15,
			RenewalTTL:    7 * 24 * 60,
		},
		Cookie: config.CookieConfig{
			Name:     "refreshToken",
			Path:     "/api/v1/auth",
			Secure:   true,
			SameSite: "none",
		},
	}
}

// newTestEnv builds a server over in-memory stubs with one active user.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	secCfg := testSecurityConfig()

	users := &stubUsers{users: map[string]*auth.User{
		testUsername: {
			ID:           "usr-test01",
			Username:     testUsername,
			PasswordHash: passwordHash(t),
			Roles:        []auth.Role{auth.RoleEmployee},
			Active:       true,
		},
	}}

	access, err := auth.NewTokenCodec(secCfg.Tokens.AccessSecret, 15*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenCodec() error = %v", err)
	}
	renewal, err := auth.NewTokenCodec(secCfg.Tokens.RenewalSecret, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("NewTokenCodec() error = %v", err)
	}

	sessions, err := auth.NewService(users, access, renewal)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	auditRepo := &memAudit{}

	server, err := New(Deps{
		Config:   config.APIConfig{Host: "127.0.0.1", Port: 0},
		Security: secCfg,
		Logger:   logging.Default(),
		Sessions: sessions,
		Audit:    auditRepo,
		Version:  "test",
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return &testEnv{
		server: server,
		router: server.buildRouter(),
		users:  users,
		audit:  auditRepo,
	}
}
