// Package api implements the HTTP boundary of Warden.
//
// This package provides:
//   - The session endpoints: login, refresh, logout, whoami
//   - The renewal-token cookie transport (HTTP-only, secure, SameSite)
//   - JWT auth middleware and role-guard middleware for protected routes
//   - Middleware stack (request ID, logging, recovery, CORS, body limit)
//   - Health, metrics, and admin audit-trail endpoints
//   - TLS support for production deployments
//
// # Error contract
//
// Every failure is a JSON envelope {status, code, message} with a stable
// code per failure category, mapped from the auth package's sentinel
// errors. Clients branch on the code, never on message text.
//
// # Security
//
// The access token travels in the Authorization header and is the only
// credential accepted on protected routes. The renewal token lives in an
// HTTP-only cookie scoped to the auth endpoints and can only mint new
// access tokens; it never grants access directly. Role gating done by a
// UI is cosmetic; this server-side guard is the enforcement point.
package api
