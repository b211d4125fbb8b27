package auth

import (
	"context"
	"fmt"
)

// Session is the result of a successful login: both tokens, issued
// together. The renewal token travels only inside an HTTP-only cookie;
// the access token is the response payload.
type Session struct {
	AccessToken  string
	RenewalToken string
}

// Service is the session state machine: it authenticates credentials
// against the user store and issues, renews, and verifies session tokens.
//
// The service holds no mutable state beyond the two codecs' signing
// secrets (read-only after construction), so every operation may run
// concurrently without coordination.
type Service struct {
	users   UserRepository
	access  *TokenCodec
	renewal *TokenCodec
}

// NewService wires the session service. The two codecs must be distinct
// instances signed with distinct secrets; config validation enforces the
// secret distinction before this point.
func NewService(users UserRepository, access, renewal *TokenCodec) (*Service, error) {
	if users == nil {
		return nil, fmt.Errorf("auth service: nil user repository")
	}
	if access == nil || renewal == nil {
		return nil, fmt.Errorf("auth service: nil token codec")
	}
	return &Service{users: users, access: access, renewal: renewal}, nil
}

// RenewalTTL returns the renewal token lifetime, used by the transport
// layer to set the cookie max-age.
func (s *Service) RenewalTTL() int {
	return int(s.renewal.TTL().Seconds())
}

// Login authenticates a username/password pair and issues a fresh session.
//
// Checks run in order: field presence, account existence, account status,
// password. Each failure maps to its own sentinel so the transport can
// answer with a distinct status code. Clients key off the distinct
// statuses, so the ordering is part of the contract even though it makes
// account existence observable.
//
// Both tokens are signed before either is returned: if the renewal token
// cannot be signed, the access token is discarded with the error.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if !user.Active {
		return nil, ErrUserInactive
	}

	match, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !match {
		return nil, ErrInvalidCredentials
	}

	accessToken, err := s.access.Encode(user.Username, user.Roles)
	if err != nil {
		return nil, err
	}
	renewalToken, err := s.renewal.Encode(user.Username, user.Roles)
	if err != nil {
		return nil, err
	}

	return &Session{AccessToken: accessToken, RenewalToken: renewalToken}, nil
}

// Refresh validates a renewal token and mints a fresh access token.
//
// The user is re-fetched by the username embedded in the token rather than
// trusting the token's role claim: roles granted or revoked since login
// take effect on the next refresh instead of being stuck inside a 7-day
// token. A user deleted since login yields ErrUserNotFound.
//
// The verified renewal claims are returned whenever the token decoded,
// even on a failed refresh, so callers can attribute the attempt; claims
// are nil iff the token itself was rejected.
//
// The renewal token itself is not rotated; it stays valid for repeated
// use until its own expiry.
func (s *Service) Refresh(ctx context.Context, renewalToken string) (string, *Claims, error) {
	claims, err := s.renewal.Decode(renewalToken)
	if err != nil {
		return "", nil, err
	}

	user, err := s.users.GetByUsername(ctx, claims.Username)
	if err != nil {
		return "", claims, err
	}

	accessToken, err := s.access.Encode(user.Username, user.Roles)
	if err != nil {
		return "", claims, err
	}

	return accessToken, claims, nil
}

// VerifyAccess decodes an access token for protected-route enforcement.
// Renewal tokens fail here: they are signed with a different secret and
// grant only the capability to mint access tokens, never direct access.
func (s *Service) VerifyAccess(raw string) (*Claims, error) {
	return s.access.Decode(raw)
}
