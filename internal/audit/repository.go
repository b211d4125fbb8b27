// Package audit records session lifecycle events (logins, refreshes,
// logouts and their denials) to the audit_logs table and serves the
// admin-facing history queries.
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session lifecycle actions recorded in the audit trail.
const (
	ActionLogin         = "login"
	ActionLoginDenied   = "login_denied"
	ActionRefresh       = "refresh"
	ActionRefreshDenied = "refresh_denied"
	ActionLogout        = "logout"
)

// Event is a single audit trail entry.
type Event struct {
	ID        string         `json:"id"`
	Action    string         `json:"action"`
	Username  string         `json:"username,omitempty"`
	Source    string         `json:"source"` // remote address of the request
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// Filter controls which audit events to return.
type Filter struct {
	Action   string // optional: filter by action
	Username string // optional: filter by username
	Limit    int    // default 50, max 200
	Offset   int    // pagination offset
}

// ListResult contains paginated audit query results.
type ListResult struct {
	Events []Event `json:"events"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// Repository defines the interface for audit trail operations.
type Repository interface {
	Create(ctx context.Context, event *Event) error
	List(ctx context.Context, filter Filter) (*ListResult, error)
}

// SQLiteRepository stores audit events in SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new audit repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts an audit event. ID and CreatedAt are generated if empty.
func (r *SQLiteRepository) Create(ctx context.Context, event *Event) error {
	if event.ID == "" {
		event.ID = "aud-" + uuid.NewString()[:8]
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	var detailsJSON any
	if event.Details != nil {
		b, err := json.Marshal(event.Details)
		if err != nil {
			return fmt.Errorf("encoding audit details: %w", err)
		}
		detailsJSON = string(b)
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO audit_logs (id, action, username, source, details, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		event.ID, event.Action, nullableString(event.Username),
		event.Source, detailsJSON,
		event.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting audit event: %w", err)
	}

	return nil
}

// List returns audit events matching the filter, most recent first.
func (r *SQLiteRepository) List(ctx context.Context, filter Filter) (*ListResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	var conditions []string
	var args []any

	if filter.Action != "" {
		conditions = append(conditions, "action = ?")
		args = append(args, filter.Action)
	}
	if filter.Username != "" {
		conditions = append(conditions, "username = ?")
		args = append(args, filter.Username)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// WHERE is assembled from fixed parameterised fragments; user input
	// only ever travels through placeholder args.
	countQuery := "SELECT COUNT(*) FROM audit_logs " + where
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting audit events: %w", err)
	}

	query := "SELECT id, action, username, source, details, created_at FROM audit_logs " +
		where + " ORDER BY created_at DESC LIMIT ? OFFSET ?"
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var username, detailsJSON sql.NullString
		var createdAt string

		if err := rows.Scan(&e.ID, &e.Action, &username, &e.Source, &detailsJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning audit event: %w", err)
		}

		if username.Valid {
			e.Username = username.String
		}
		if detailsJSON.Valid && detailsJSON.String != "" {
			var details map[string]any
			if json.Unmarshal([]byte(detailsJSON.String), &details) == nil {
				e.Details = details
			}
		}

		e.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing audit timestamp %q: %w", createdAt, err)
		}

		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit events: %w", err)
	}

	if events == nil {
		events = []Event{}
	}

	return &ListResult{
		Events: events,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}, nil
}

// nullableString returns nil for empty strings, for nullable TEXT columns.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
