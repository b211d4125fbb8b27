// Package auth implements the credential and session core of Warden.
//
// It provides:
//   - Argon2id password hashing with constant-time verification
//   - Self-contained signed session tokens (HS256 JWT): a short-lived
//     access token and a long-lived renewal token, signed with distinct
//     process-wide secrets
//   - The session state machine: login (issue both tokens), refresh
//     (mint a fresh access token from a valid renewal token), and token
//     verification for protected routes
//   - Role-based access predicates over decoded token claims
//   - The SQLite-backed user store and first-boot admin seeding
//
// Sessions are stateless: no token is ever persisted server-side,
// and validity is determined entirely by signature and expiry. The only
// revocation mechanism is expiry or client-side cookie deletion; a
// still-valid token cannot be invalidated early. Refresh re-fetches the
// user record so role changes propagate within one access-token lifetime
// instead of being frozen inside a week-old renewal token.
package auth
