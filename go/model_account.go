package marketplaceserver

import (
	"time"

	accountstypes "github.com/levaja/marketplace-api/internal/domains/accounts/application/types"
	accountsdomain "github.com/levaja/marketplace-api/internal/domains/accounts/domain"
)

type Preferences struct {
	Categories           []string `json:"categories"`
	MaxDistance          float64  `json:"maxDistance"`
	NotificationsEnabled bool     `json:"notifications"`
	PreferredMarkets     []string `json:"preferredMarkets"`
	DietaryRestrictions  []string `json:"dietaryRestrictions"`
}

// User never carries the password hash.
type User struct {
	Id                  string      `json:"id"`
	Name                string      `json:"name"`
	Email               string      `json:"email"`
	Role                string      `json:"role"`
	SectorId            string      `json:"sectorId,omitempty"`
	Avatar              string      `json:"avatar,omitempty"`
	Phone               string      `json:"phone,omitempty"`
	Preferences         Preferences `json:"preferences"`
	LoyaltyPoints       int         `json:"loyaltyPoints"`
	SustainabilityScore int         `json:"sustainabilityScore"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
}

type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phone           string `json:"phone"`
	AcceptTerms     bool   `json:"acceptTerms"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type ProfileRequest struct {
	Name        *string      `json:"name"`
	Phone       *string      `json:"phone"`
	Avatar      *string      `json:"avatar"`
	Preferences *Preferences `json:"preferences"`
}

type PasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UserRequest is the admin create and partial update body.
type UserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	SectorId *string `json:"sectorId"`
	Phone    *string `json:"phone"`
	Avatar   *string `json:"avatar"`
}

func fromUser(u *accountsdomain.User) User {
	return User{
		Id:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		Role:     string(u.Role),
		SectorId: u.SectorID,
		Avatar:   u.Avatar,
		Phone:    u.Phone,
		Preferences: Preferences{
			Categories:           nonNil(u.Preferences.Categories),
			MaxDistance:          u.Preferences.MaxDistanceKm,
			NotificationsEnabled: u.Preferences.NotificationsEnabled,
			PreferredMarkets:     nonNil(u.Preferences.PreferredMarkets),
			DietaryRestrictions:  nonNil(u.Preferences.DietaryRestrictions),
		},
		LoyaltyPoints:       u.LoyaltyPoints,
		SustainabilityScore: u.SustainabilityScore,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func fromUsers(users []*accountsdomain.User) []User {
	out := make([]User, 0, len(users))
	for _, u := range users {
		out = append(out, fromUser(u))
	}
	return out
}

func fromAuthResult(r *accountstypes.AuthResult) AuthResponse {
	return AuthResponse{User: fromUser(r.User), Token: r.Token, ExpiresAt: r.ExpiresAt}
}

func (p *Preferences) toDomain() *accountsdomain.Preferences {
	if p == nil {
		return nil
	}
	return &accountsdomain.Preferences{
		Categories:           p.Categories,
		MaxDistanceKm:        p.MaxDistance,
		NotificationsEnabled: p.NotificationsEnabled,
		PreferredMarkets:     p.PreferredMarkets,
		DietaryRestrictions:  p.DietaryRestrictions,
	}
}

func (r UserRequest) toInput(id string) accountstypes.UserInput {
	return accountstypes.UserInput{
		ID:       id,
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
		SectorID: r.SectorId,
		Phone:    r.Phone,
		Avatar:   r.Avatar,
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
