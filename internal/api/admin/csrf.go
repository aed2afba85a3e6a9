package admin

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"time"
)

// CSRFHeaderName is the header mutating requests have to carry the CSRF token in
const CSRFHeaderName = "X-CSRF-Token"

// CSRFManager issues and verifies CSRF tokens bound to a session.
// The token is stored in the session and mirrored to the client via a readable cookie;
// the client sends it back through the CSRF header on every mutating request.
type CSRFManager struct {
	secret []byte
}

// NewCSRFManager returns a CSRFManager using the provided secret key
func NewCSRFManager(secret string) *CSRFManager {
	return &CSRFManager{secret: []byte(secret)}
}

// IssueToken generates a new CSRF token bound to the given session ID
func (manager *CSRFManager) IssueToken(sessionID string) string {
	mac := hmac.New(sha256.New, manager.secret)
	mac.Write([]byte(sessionID))
	mac.Write([]byte{'|'})
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(time.Now().UnixNano()))
	mac.Write(buf)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// VerifyToken compares the supplied token with the token bound to the session
func (manager *CSRFManager) VerifyToken(expected, supplied string) bool {
	if expected == "" || supplied == "" {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(supplied))
}
