package session

// Session represents a user session at the back office API.
// A session is identified by its token rather than its session ID as the session ID is an optional field whose presence
// depends on whether the OIDC provider implements OpenID session management.
// The CSRF token is bound to the session and mirrored to the client via a readable cookie.
type Session struct {
	Token     string
	SessionID string
	UserID    string
	CSRFToken string
	Expires   int64
}
