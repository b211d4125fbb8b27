package auth

import "testing"

func TestHasAnyRole(t *testing.T) {
	claims := &Claims{
		Username: "alice",
		Roles:    []Role{RoleEmployee, RoleManager},
	}

	tests := []struct {
		name    string
		claims  *Claims
		allowed []Role
		want    bool
	}{
		{"exact match", claims, []Role{RoleManager}, true},
		{"one of several", claims, []Role{RoleAdmin, RoleManager}, true},
		{"no overlap", claims, []Role{RoleAdmin}, false},
		{"nil claims", nil, []Role{RoleEmployee}, false},
		{"empty allowed", claims, nil, false},
		{"empty roles", &Claims{Username: "bob"}, []Role{RoleEmployee}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasAnyRole(tt.claims, tt.allowed...); got != tt.want {
				t.Errorf("HasAnyRole() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUser_HasRole(t *testing.T) {
	u := &User{Roles: []Role{RoleEmployee}}

	if !u.HasRole(RoleEmployee) {
		t.Error("HasRole(employee) should be true")
	}
	if u.HasRole(RoleAdmin) {
		t.Error("HasRole(admin) should be false")
	}
}

func TestIsValidRole(t *testing.T) {
	for _, r := range ValidRoles {
		if !IsValidRole(r) {
			t.Errorf("IsValidRole(%q) should be true", r)
		}
	}
	if IsValidRole("superuser") {
		t.Error("IsValidRole(superuser) should be false")
	}
}

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		username string
		want     bool
	}{
		{"alice", true},
		{"alice.smith", true},
		{"a_b-c.9", true},
		{"", false},
		{"has space", false},
		{"uni©ode", false},
	}

	for _, tt := range tests {
		if got := IsValidUsername(tt.username); got != tt.want {
			t.Errorf("IsValidUsername(%q) = %v, want %v", tt.username, got, tt.want)
		}
	}
}
