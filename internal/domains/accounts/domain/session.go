package domain

import "time"

// Session backs one issued token. Revoking it invalidates the token before expiry.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	UserID    string
	Role      Role
	SessionID string
	Token     string
}

// Anonymous reports whether no user is attached.
func (p Principal) Anonymous() bool { return p.UserID == "" }
