package ports

import (
	"context"
	"errors"

	"github.com/levaja/marketplace-api/internal/domains/accounts/domain"
)

var (
	ErrNotFound = errors.New("user not found")
	// ErrEmailTaken is returned by Save when another user owns the email.
	ErrEmailTaken = errors.New("email is already registered")
	ErrUserExists = errors.New("user id already exists")
)

type Repository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.User, error)
}
