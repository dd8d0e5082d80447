package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

var ErrSessionRequired = errors.New("auth: authenticated session required")

type Token string

// Session carries the caller's credentials to collaborators that make authenticated calls.
// It is passed explicitly; nothing in the process keeps a shared token.
type Session struct {
	Token  Token
	UserID string
}

// Anonymous is the zero session used for unauthenticated requests.
var Anonymous = Session{}

// NewSession trims the token and user id.
func NewSession(token, userID string) Session {
	return Session{Token: Token(strings.TrimSpace(token)), UserID: strings.TrimSpace(userID)}
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// OwnerKey identifies the credential holder for per-caller state. It is derived from the token
// only, never from UserID, and is "" for anonymous sessions.
func (s Session) OwnerKey() string {
	if !s.Authenticated() {
		return ""
	}
	sum := sha256.Sum256([]byte(s.Token))
	return hex.EncodeToString(sum[:16])
}

// BearerHeader renders the Authorization header value, or "" for anonymous sessions.
func (s Session) BearerHeader() string {
	if !s.Authenticated() {
		return ""
	}
	return "Bearer " + string(s.Token)
}
