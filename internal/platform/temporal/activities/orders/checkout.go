package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/levaja/marketplace-api/internal/domains/orders/application"
	orderstypes "github.com/levaja/marketplace-api/internal/domains/orders/application/types"
	"github.com/levaja/marketplace-api/internal/domains/orders/domain"
	ordersports "github.com/levaja/marketplace-api/internal/domains/orders/ports"
)

// Application error types carried across the workflow boundary.
const (
	ErrorTypeInvalidInput        = "orders.InvalidInput"
	ErrorTypeEmptyCart           = "orders.EmptyCart"
	ErrorTypeConflict            = "orders.Conflict"
	ErrorTypeIdempotencyConflict = "orders.IdempotencyConflict"
)

const (
	// PlaceOrderActivityName turns the buyer's cart into a pending order.
	PlaceOrderActivityName = "orders.activities.PlaceOrder"
	// NotifyOrderPlacedActivityName sends the order received notification.
	NotifyOrderPlacedActivityName = "orders.activities.NotifyOrderPlaced"
)

// Activities groups the checkout activities of the orders context.
type Activities struct {
	service ordersports.Service
}

func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// PlaceOrder persists the order. Retries replay through the idempotency key.
func (a *Activities) PlaceOrder(ctx context.Context, input orderstypes.CheckoutInput) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("place order activity not initialized", "userId", input.UserID)
		return nil, errors.New("place order activity not initialized")
	}
	logger.Info("PlaceOrder activity started", "userId", input.UserID)
	order, err := a.service.PlaceOrder(ctx, input)
	if err != nil {
		logger.Error("PlaceOrder activity failed", "userId", input.UserID, "error", err)
		return nil, classify(err)
	}
	logger.Info("PlaceOrder activity completed", "orderId", order.ID, "itemCount", order.ItemCount)
	return order, nil
}

// NotifyOrderPlaced informs the buyer once. A heartbeat marks completion so retries skip it.
func (a *Activities) NotifyOrderPlaced(ctx context.Context, input orderstypes.OrderIdentifier) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("notify activity not initialized", "orderId", input.OrderID)
		return errors.New("notify activity not initialized")
	}
	var hb notifyHeartbeat
	if activity.HasHeartbeatDetails(ctx) {
		_ = activity.GetHeartbeatDetails(ctx, &hb)
	}
	if hb.Completed {
		logger.Info("NotifyOrderPlaced already completed in prior attempt; skipping", "orderId", input.OrderID)
		return nil
	}
	if err := a.service.NotifyPlaced(ctx, input.OrderID); err != nil {
		logger.Error("NotifyOrderPlaced failed", "orderId", input.OrderID, "error", err)
		return err
	}
	activity.RecordHeartbeat(ctx, notifyHeartbeat{Completed: true})
	logger.Info("NotifyOrderPlaced activity completed", "orderId", input.OrderID)
	return nil
}

type notifyHeartbeat struct {
	Completed bool
}

// classify marks business rejections as non-retryable so the workflow fails fast.
func classify(err error) error {
	var errType string
	switch {
	case errors.Is(err, ordersapp.ErrEmptyCart):
		errType = ErrorTypeEmptyCart
	case errors.Is(err, ordersports.ErrIdempotencyConflict):
		errType = ErrorTypeIdempotencyConflict
	case errors.Is(err, ordersapp.ErrInvalidInput):
		errType = ErrorTypeInvalidInput
	case errors.Is(err, ordersapp.ErrConflict):
		errType = ErrorTypeConflict
	default:
		return err
	}
	return temporal.NewNonRetryableApplicationError(err.Error(), errType, err)
}
