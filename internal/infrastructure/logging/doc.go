// Package logging provides structured logging for Warden built on slog.
//
// It configures output format (JSON for production, text for development),
// level filtering, and default service/version fields from configuration.
// All methods are safe for concurrent use from multiple goroutines.
package logging
