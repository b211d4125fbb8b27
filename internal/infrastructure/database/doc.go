// Package database manages the SQLite connection that backs the user
// store and audit trail, including schema migrations embedded in the
// binary.
//
// SQLite fits Warden's profile: the credential store is read-dominated
// (one lookup per login/refresh), writes are rare (provisioning, audit
// inserts), and a single-file database keeps deployment to one binary
// plus one file.
package database
