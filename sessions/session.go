package sessions

import "time"

// Session is a server-side login, looked up by the opaque token stored in the admin's cookie.
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time // Flat deadline, CreatedAt + TTL
}

// Expired reports whether the session is past its deadline at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
