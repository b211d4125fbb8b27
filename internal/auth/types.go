package auth

import (
	"errors"
	"regexp"
	"time"
)

// usernamePattern defines the valid format for usernames:
// alphanumeric, dots, hyphens, underscores, 1-64 characters.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]{1,64}$`)

// maxUsernameLength is the maximum allowed username length.
const maxUsernameLength = 64

// IsValidUsername checks if a username meets format requirements.
func IsValidUsername(username string) bool {
	return len(username) <= maxUsernameLength && usernamePattern.MatchString(username)
}

// Role is a named capability tag attached to a user record. Authorisation
// is coarse-grained: a route declares the roles it accepts and access is
// granted when the token carries at least one of them.
type Role string

const (
	// RoleEmployee is the baseline role every account holds.
	RoleEmployee Role = "employee"

	// RoleManager can view the audit trail and other supervisory surfaces.
	RoleManager Role = "manager"

	// RoleAdmin has full control, including account administration.
	RoleAdmin Role = "admin"
)

// ValidRoles is the set of roles an account may carry.
var ValidRoles = []Role{RoleEmployee, RoleManager, RoleAdmin}

// IsValidRole returns true if the role is one of the known roles.
func IsValidRole(r Role) bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// User represents an account in the credential store.
//
// The session core only ever reads user records; account mutation is the
// concern of whatever provisions the store (seeding, ops tooling).
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // never serialised
	Roles        []Role    `json:"roles"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole returns true if the user record carries the given role.
func (u *User) HasRole(r Role) bool {
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// Sentinel errors for session operations. Each maps to exactly one HTTP
// status/code pair in the API layer, so clients can render a precise
// message without parsing free text.
var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidUsername    = errors.New("invalid username format")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrUsernameExists     = errors.New("username already exists")
)
