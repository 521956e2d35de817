package ports

import (
	"context"
	"time"

	types "github.com/levaja/marketplace-api/internal/domains/orders/application/types"
	"github.com/levaja/marketplace-api/internal/domains/orders/domain"
)

// Service exposes order use cases to adapters.
type Service interface {
	PlaceOrder(ctx context.Context, input types.CheckoutInput) (*domain.Order, error)
	NotifyPlaced(ctx context.Context, orderID string) error
	ListOrders(ctx context.Context, userID string) ([]*domain.Order, error)
	GetOrder(ctx context.Context, id types.OrderIdentifier) (*domain.Order, error)
	ListAllOrders(ctx context.Context, status string) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, change types.StatusChange) (*domain.Order, error)
	CancelOrder(ctx context.Context, id types.OrderIdentifier) (*domain.Order, error)
	SustainabilityStats(ctx context.Context, userID string, now time.Time) (domain.SustainabilityStats, error)
}

// WorkflowOrchestrator runs checkout durably, or inline when no workflow engine is configured.
type WorkflowOrchestrator interface {
	Checkout(ctx context.Context, input types.CheckoutInput) (*domain.Order, error)
}
