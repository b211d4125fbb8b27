package api

import (
	"net/http"
	"strconv"

	"github.com/wardenlabs/warden/internal/audit"
)

// handleAuditList returns the session audit trail, newest first.
// Restricted to manager and admin roles by the router.
//
// Query parameters: action, username, limit (max 200), offset.
func (s *Server) handleAuditList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := audit.Filter{
		Action:   q.Get("action"),
		Username: q.Get("username"),
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeBadRequest(w, "limit must be an integer")
			return
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeBadRequest(w, "offset must be an integer")
			return
		}
		filter.Offset = n
	}

	result, err := s.audit.List(r.Context(), filter)
	if err != nil {
		s.logger.Error("audit list failed", "error", err, "request_id", r.Context().Value(ctxKeyRequestID))
		writeInternalError(w, "failed to list audit events")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
