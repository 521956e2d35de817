package ports

import (
	"time"

	"github.com/levaja/marketplace-api/internal/domains/accounts/domain"
)

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Claims are the verified contents of an access token.
type Claims struct {
	UserID    string
	Role      domain.Role
	SessionID string
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies access tokens.
type TokenIssuer interface {
	Issue(userID string, role domain.Role, sessionID string, now time.Time) (string, time.Time, error)
	Parse(token string) (Claims, error)
}
