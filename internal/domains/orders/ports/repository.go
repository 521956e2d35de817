package ports

import (
	"context"
	"errors"

	cartdomain "github.com/levaja/marketplace-api/internal/domains/cart/domain"
	"github.com/levaja/marketplace-api/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	// Delete removes an order. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}

// CartGateway reads and clears the buyer's cart at checkout.
type CartGateway interface {
	Get(ctx context.Context, userID string) (*cartdomain.Cart, error)
	Clear(ctx context.Context, userID string) error
}

// OrderNotice is an order_update message for the order owner.
type OrderNotice struct {
	UserID  string
	OrderID string
	Title   string
	Message string
}

// Notifier delivers order updates to the buyer.
type Notifier interface {
	NotifyOrder(ctx context.Context, notice OrderNotice) error
}

// LoyaltyLedger credits loyalty points to a buyer.
type LoyaltyLedger interface {
	AddLoyaltyPoints(ctx context.Context, userID string, points int) error
}
