package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderstypes "github.com/levaja/marketplace-api/internal/domains/orders/application/types"
	"github.com/levaja/marketplace-api/internal/domains/orders/domain"
	orderactivities "github.com/levaja/marketplace-api/internal/platform/temporal/activities/orders"
)

// RunCheckoutSequence places the order and then notifies the buyer.
// A failed notification is logged but does not fail the checkout.
func RunCheckoutSequence(ctx workflow.Context, input orderstypes.CheckoutInput) (*domain.Order, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("checkout sequence started", "userId", input.UserID)
	if input.IdempotencyKey == "" {
		input.IdempotencyKey = workflow.GetInfo(ctx).WorkflowExecution.ID
	}
	placeOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	notifyOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    5 * time.Second,
			MaximumAttempts:    3,
		},
	}

	var order domain.Order
	err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, placeOptions), orderactivities.PlaceOrderActivityName, input).Get(ctx, &order)
	if err != nil {
		logger.Error("checkout sequence failed", "userId", input.UserID, "error", err)
		return nil, err
	}
	logger.Info("checkout sequence placed order", "orderId", order.ID)

	notice := orderstypes.OrderIdentifier{OrderID: order.ID, UserID: order.UserID}
	if err := workflow.ExecuteActivity(workflow.WithActivityOptions(ctx, notifyOptions), orderactivities.NotifyOrderPlacedActivityName, notice).Get(ctx, nil); err != nil {
		logger.Warn("checkout sequence notification failed", "orderId", order.ID, "error", err)
	}
	return &order, nil
}
