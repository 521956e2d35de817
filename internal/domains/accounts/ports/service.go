package ports

import (
	"context"

	types "github.com/levaja/marketplace-api/internal/domains/accounts/application/types"
	"github.com/levaja/marketplace-api/internal/domains/accounts/domain"
)

// Service exposes account use cases to adapters.
type Service interface {
	Register(ctx context.Context, input types.RegisterInput) (*types.AuthResult, error)
	Login(ctx context.Context, email, password string) (*types.AuthResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (domain.Principal, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update types.ProfileUpdate) (*domain.User, error)
	ChangePassword(ctx context.Context, userID string, change types.PasswordChange) error

	CreateUser(ctx context.Context, input types.UserInput) (*domain.User, error)
	UpdateUser(ctx context.Context, input types.UserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context, role string) ([]*domain.User, error)

	AddLoyaltyPoints(ctx context.Context, userID string, points int) error
}
