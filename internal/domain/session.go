package domain

import "time"

// Session is an ephemeral credential binding a request to a user. Sessions
// are issued by the external identity provider; quill only reads them.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its expiry at the given time.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
