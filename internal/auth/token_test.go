package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := testCodec(t, 15*time.Minute)

	raw, err := codec.Encode("alice", []Role{RoleEmployee, RoleManager})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	claims, err := codec.Decode(raw)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if claims.Username != "alice" {
		t.Errorf("Username = %q, want %q", claims.Username, "alice")
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != RoleEmployee || claims.Roles[1] != RoleManager {
		t.Errorf("Roles = %v, want [employee manager]", claims.Roles)
	}
	if claims.ID == "" {
		t.Error("token should carry a jti")
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Error("token expiry should be in the future")
	}
}

func TestTokenCodec_Expired(t *testing.T) {
	codec := testCodec(t, 15*time.Minute)

	raw, err := codec.encodeExpired("alice", []Role{RoleEmployee})
	if err != nil {
		t.Fatalf("encodeExpired() error = %v", err)
	}

	_, err = codec.Decode(raw)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("Decode() error = %v, want ErrTokenExpired", err)
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	codec := testCodec(t, 15*time.Minute)
	other, err := NewTokenCodec("another-secret-fedcba9876543210-fedcba9876543210", 15*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenCodec() error = %v", err)
	}

	raw, err := codec.Encode("alice", []Role{RoleEmployee})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	_, err = other.Decode(raw)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Decode() with wrong secret error = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenCodec_Tampered(t *testing.T) {
	codec := testCodec(t, 15*time.Minute)

	raw, err := codec.Encode("alice", []Role{RoleEmployee})
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	// Flip a character in the payload segment
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		t.Fatalf("JWT should have 3 segments, got %d", len(parts))
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	_, err = codec.Decode(tampered)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Decode() of tampered token error = %v, want ErrTokenInvalid", err)
	}
}

func TestTokenCodec_TamperedAndExpired(t *testing.T) {
	// A token that is both tampered and expired must report invalid, not
	// expired: the expiry claim cannot be trusted before the signature.
	codec := testCodec(t, 15*time.Minute)

	raw, err := codec.encodeExpired("alice", []Role{RoleEmployee})
	if err != nil {
		t.Fatalf("encodeExpired() error = %v", err)
	}

	parts := strings.Split(raw, ".")
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("x", len(parts[2]))

	_, err = codec.Decode(tampered)
	if !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("Decode() error = %v, want ErrTokenInvalid", err)
	}
	if errors.Is(err, ErrTokenExpired) {
		t.Error("tampered token must never report ErrTokenExpired")
	}
}

func TestTokenCodec_Malformed(t *testing.T) {
	codec := testCodec(t, 15*time.Minute)

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two segments", "aaaa.bbbb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.raw)
			if !errors.Is(err, ErrTokenInvalid) {
				t.Errorf("Decode(%q) error = %v, want ErrTokenInvalid", tt.raw, err)
			}
		})
	}
}

func TestNewTokenCodec_Validation(t *testing.T) {
	if _, err := NewTokenCodec("", 15*time.Minute); err == nil {
		t.Error("NewTokenCodec() should reject empty secret")
	}
	if _, err := NewTokenCodec("secret", 0); err == nil {
		t.Error("NewTokenCodec() should reject zero lifetime")
	}
	if _, err := NewTokenCodec("secret", -time.Minute); err == nil {
		t.Error("NewTokenCodec() should reject negative lifetime")
	}
}

func TestTokenCodec_TTL(t *testing.T) {
	codec := testCodec(t, 7*24*time.Hour)
	if codec.TTL() != 7*24*time.Hour {
		t.Errorf("TTL() = %v, want %v", codec.TTL(), 7*24*time.Hour)
	}
}
