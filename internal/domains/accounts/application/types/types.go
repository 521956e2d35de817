package types

import (
	"time"

	"github.com/levaja/marketplace-api/internal/domains/accounts/domain"
)

// RegisterInput is a consumer sign-up request.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	AcceptTerms     bool
}

// AuthResult carries the signed-in user and the bearer token.
type AuthResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// ProfileUpdate changes the caller's own profile. Nil fields are kept.
type ProfileUpdate struct {
	Name        *string
	Phone       *string
	Avatar      *string
	Preferences *domain.Preferences
}

type PasswordChange struct {
	Current string
	New     string
}

// UserInput is an administrative create or partial update. Nil fields are kept on update.
type UserInput struct {
	ID       string
	Name     *string
	Email    *string
	Password *string
	Role     *string
	SectorID *string
	Phone    *string
	Avatar   *string
}
