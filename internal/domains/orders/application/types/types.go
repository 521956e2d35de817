package types

import (
	"github.com/levaja/marketplace-api/internal/domains/orders/domain"
)

// CheckoutInput turns the caller's cart into an order.
type CheckoutInput struct {
	UserID          string
	DeliveryType    string
	DeliveryAddress *domain.Address
	PaymentMethod   string
	Notes           string
	IdempotencyKey  string
}

// OrderIdentifier addresses a single order, optionally scoped to its owner.
type OrderIdentifier struct {
	OrderID string
	UserID  string
}

// StatusChange is an admin lifecycle update.
type StatusChange struct {
	OrderID string
	Status  string
}
