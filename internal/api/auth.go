package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/wardenlabs/warden/internal/audit"
	"github.com/wardenlabs/warden/internal/auth"
)

// Session-specific error codes. Stable contract: clients branch on these,
// never on message text.
const (
	errCodeMissingFields   = "missing_fields"
	errCodeAccountInactive = "account_inactive"
	errCodeBadCredential   = "invalid_credentials"
	errCodeRenewalMissing  = "renewal_token_missing"
	errCodeRenewalInvalid  = "renewal_token_invalid"
	errCodeRenewalExpired  = "renewal_token_expired"
)

// loginRequest is the request body for POST /api/v1/auth/login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// tokenResponse is the success body for login and refresh.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// handleLogin authenticates a username/password pair. On success the
// access token is returned in the body and the renewal token is set as an
// HTTP-only cookie; on failure each sentinel maps to its own status/code.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid JSON body")
		return
	}

	session, err := s.sessions.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.stats.loginFailure.Add(1)
		s.recordAudit(r, audit.ActionLoginDenied, req.Username, map[string]any{"reason": loginDenyReason(err)})

		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			writeError(w, http.StatusBadRequest, errCodeMissingFields, "all fields are required")
		case errors.Is(err, auth.ErrUserNotFound):
			writeNotFound(w, "user not found")
		case errors.Is(err, auth.ErrUserInactive):
			writeError(w, http.StatusBadRequest, errCodeAccountInactive, "user account not active")
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, errCodeBadCredential, "incorrect password")
		default:
			s.logger.Error("login failed", "error", err, "request_id", r.Context().Value(ctxKeyRequestID))
			writeInternalError(w, "login failed")
		}
		return
	}

	s.stats.loginSuccess.Add(1)
	s.recordAudit(r, audit.ActionLogin, req.Username, nil)

	s.setRenewalCookie(w, session.RenewalToken)
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: session.AccessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.secCfg.Tokens.AccessTTL) * 60,
	})
}

// handleRefresh mints a fresh access token from the renewal cookie.
//
// The client calls this when its access token has expired or is about to.
// The renewal token is not rotated; the same cookie stays valid until its
// own expiry.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	raw, ok := s.renewalTokenFromCookie(r)
	if !ok {
		s.stats.refreshDenied.Add(1)
		s.recordAudit(r, audit.ActionRefreshDenied, "", map[string]any{"reason": "missing"})
		writeError(w, http.StatusUnauthorized, errCodeRenewalMissing, "missing renewal token")
		return
	}

	accessToken, claims, err := s.sessions.Refresh(r.Context(), raw)
	username := ""
	if claims != nil {
		username = claims.Username
	}
	if err != nil {
		s.stats.refreshDenied.Add(1)
		switch {
		case errors.Is(err, auth.ErrTokenExpired):
			s.recordAudit(r, audit.ActionRefreshDenied, username, map[string]any{"reason": "expired"})
			writeError(w, http.StatusUnauthorized, errCodeRenewalExpired, "renewal token expired")
		case errors.Is(err, auth.ErrTokenInvalid):
			s.recordAudit(r, audit.ActionRefreshDenied, username, map[string]any{"reason": "invalid"})
			writeError(w, http.StatusUnauthorized, errCodeRenewalInvalid, "invalid renewal token")
		case errors.Is(err, auth.ErrUserNotFound):
			s.recordAudit(r, audit.ActionRefreshDenied, username, map[string]any{"reason": "unknown_user"})
			writeNotFound(w, "user not found")
		default:
			s.logger.Error("refresh failed", "error", err, "request_id", r.Context().Value(ctxKeyRequestID))
			writeInternalError(w, "refresh failed")
		}
		return
	}

	s.stats.refreshes.Add(1)
	s.recordAudit(r, audit.ActionRefresh, username, nil)

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.secCfg.Tokens.AccessTTL) * 60,
	})
}

// handleLogout clears the renewal cookie if present. Idempotent: a logout
// with no cookie is still a success. There is no server-side session to
// tear down; erasing the client's cookie is the whole operation.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.renewalTokenFromCookie(r); ok {
		s.clearRenewalCookie(w)
	}

	s.stats.logouts.Add(1)
	s.recordAudit(r, audit.ActionLogout, "", nil)

	writeJSON(w, http.StatusOK, map[string]string{"message": "logged out successfully"})
}

// handleMe returns the verified claims of the presented access token.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeUnauthorized(w, "missing access token")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"username":   claims.Username,
		"roles":      claims.Roles,
		"expires_at": claims.ExpiresAt,
	})
}

// setRenewalCookie stores the renewal token in an HTTP-only cookie.
// Max-Age matches the token's own lifetime, so the browser and the
// signature expire the credential together.
func (s *Server) setRenewalCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.secCfg.Cookie.Name,
		Value:    token,
		Path:     s.secCfg.Cookie.Path,
		Domain:   s.secCfg.Cookie.Domain,
		MaxAge:   s.sessions.RenewalTTL(),
		HttpOnly: true,
		Secure:   s.secCfg.Cookie.Secure,
		SameSite: s.cookieSameSite(),
	})
}

// clearRenewalCookie expires the renewal cookie. Attributes must match
// those used at set time or the browser will not remove it.
func (s *Server) clearRenewalCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.secCfg.Cookie.Name,
		Value:    "",
		Path:     s.secCfg.Cookie.Path,
		Domain:   s.secCfg.Cookie.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secCfg.Cookie.Secure,
		SameSite: s.cookieSameSite(),
	})
}

// renewalTokenFromCookie reads the renewal token from the request cookie.
func (s *Server) renewalTokenFromCookie(r *http.Request) (string, bool) {
	c, err := r.Cookie(s.secCfg.Cookie.Name)
	if err != nil {
		return "", false
	}
	v := strings.TrimSpace(c.Value)
	if v == "" {
		return "", false
	}
	return v, true
}

// cookieSameSite maps the configured same_site string to its http value.
func (s *Server) cookieSameSite() http.SameSite {
	switch strings.ToLower(s.secCfg.Cookie.SameSite) {
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteNoneMode
	}
}

// recordAudit writes a session event to the audit trail. Audit failures
// are logged, never surfaced to the client: the session operation already
// succeeded or failed on its own terms.
func (s *Server) recordAudit(r *http.Request, action, username string, details map[string]any) {
	event := &audit.Event{
		Action:   action,
		Username: username,
		Source:   r.RemoteAddr,
		Details:  details,
	}
	if err := s.audit.Create(r.Context(), event); err != nil {
		s.logger.Warn("audit write failed", "action", action, "error", err)
	}
}

// loginDenyReason maps a login error to the audit detail string.
func loginDenyReason(err error) string {
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		return "missing_fields"
	case errors.Is(err, auth.ErrUserNotFound):
		return "unknown_user"
	case errors.Is(err, auth.ErrUserInactive):
		return "inactive"
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "bad_password"
	default:
		return "internal"
	}
}
