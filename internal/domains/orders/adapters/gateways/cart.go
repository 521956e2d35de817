package gateways

import (
	"context"

	cartdomain "github.com/levaja/marketplace-api/internal/domains/cart/domain"
	cartports "github.com/levaja/marketplace-api/internal/domains/cart/ports"
	"github.com/levaja/marketplace-api/internal/domains/orders/ports"
)

var _ ports.CartGateway = (*Carts)(nil)

// Carts reads and clears buyer carts through the cart context.
type Carts struct {
	service cartports.Service
}

func NewCarts(service cartports.Service) *Carts {
	return &Carts{service: service}
}

func (c *Carts) Get(ctx context.Context, userID string) (*cartdomain.Cart, error) {
	return c.service.Get(ctx, userID)
}

func (c *Carts) Clear(ctx context.Context, userID string) error {
	_, err := c.service.Clear(ctx, userID)
	return err
}
