package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"

	cartdomain "github.com/levaja/marketplace-api/internal/domains/cart/domain"
	"github.com/levaja/marketplace-api/internal/domains/orders/adapters/memory"
	"github.com/levaja/marketplace-api/internal/domains/orders/application"
	orderstypes "github.com/levaja/marketplace-api/internal/domains/orders/application/types"
	"github.com/levaja/marketplace-api/internal/domains/orders/domain"
	"github.com/levaja/marketplace-api/internal/domains/orders/ports"
	orderactivities "github.com/levaja/marketplace-api/internal/platform/temporal/activities/orders"
	"github.com/levaja/marketplace-api/internal/shared/money"
)

type carts map[string]*cartdomain.Cart

func (c carts) Get(_ context.Context, userID string) (*cartdomain.Cart, error) {
	if cart, ok := c[userID]; ok {
		return cart.Clone(), nil
	}
	return &cartdomain.Cart{UserID: userID}, nil
}

func (c carts) Clear(_ context.Context, userID string) error {
	delete(c, userID)
	return nil
}

type notifier struct {
	err   error
	calls int
}

func (n *notifier) NotifyOrder(context.Context, ports.OrderNotice) error {
	n.calls++
	return n.err
}

func newEnvironment(t *testing.T, n *notifier) (*testsuite.TestWorkflowEnvironment, *memory.IdempotencyStore) {
	t.Helper()
	var suite testsuite.WorkflowTestSuite
	env := suite.NewTestWorkflowEnvironment()

	buyerCarts := carts{"u-1": {ID: "c-1", UserID: "u-1", Items: []cartdomain.Item{{
		ID: "l-1", ProductID: "1", ProductName: "Pão Integral Artesanal", MarketID: "1", MarketName: "Mercado Verde",
		UnitPrice: money.MustParse("8.50"), OriginalPrice: money.MustParse("12.90"), AvailableQuantity: 15, SelectedQuantity: 2,
	}}}}
	keys := memory.NewIdempotencyStore()
	now := time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)
	svc := application.NewService(memory.NewRepository(), buyerCarts,
		application.WithNotifier(n),
		application.WithIdempotencyStore(keys),
		application.WithClock(func() time.Time { return now }))
	acts := orderactivities.NewActivities(svc)

	env.RegisterWorkflowWithOptions(CheckoutWorkflow, workflow.RegisterOptions{Name: CheckoutWorkflowName})
	env.RegisterActivityWithOptions(acts.PlaceOrder, activity.RegisterOptions{Name: orderactivities.PlaceOrderActivityName})
	env.RegisterActivityWithOptions(acts.NotifyOrderPlaced, activity.RegisterOptions{Name: orderactivities.NotifyOrderPlacedActivityName})
	return env, keys
}

func TestCheckoutWorkflow_PlacesOrderAndNotifies(t *testing.T) {
	n := &notifier{}
	env, keys := newEnvironment(t, n)
	env.ExecuteWorkflow(CheckoutWorkflowName, CheckoutWorkflowInput{
		Command: orderstypes.CheckoutInput{UserID: "u-1", DeliveryType: "pickup", PaymentMethod: "pix"},
		TraceID: "trace-1",
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var order domain.Order
	require.NoError(t, env.GetWorkflowResult(&order))
	assert.Equal(t, "17", order.Total.String())
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, 1, n.calls)

	record, err := keys.Get(context.Background(), "default-test-workflow-id")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, order.ID, record.OrderID)
}

func TestCheckoutWorkflow_NotificationFailureDoesNotFailCheckout(t *testing.T) {
	n := &notifier{err: errors.New("inbox unavailable")}
	env, _ := newEnvironment(t, n)
	env.ExecuteWorkflow(CheckoutWorkflowName, CheckoutWorkflowInput{
		Command: orderstypes.CheckoutInput{UserID: "u-1", DeliveryType: "pickup", PaymentMethod: "cash"},
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())
	assert.Equal(t, 3, n.calls)
}

func TestCheckoutWorkflow_EmptyCartFailsWithoutRetry(t *testing.T) {
	env, _ := newEnvironment(t, &notifier{})
	env.ExecuteWorkflow(CheckoutWorkflowName, CheckoutWorkflowInput{
		Command: orderstypes.CheckoutInput{UserID: "u-2", DeliveryType: "pickup", PaymentMethod: "pix"},
	})
	require.True(t, env.IsWorkflowCompleted())
	err := env.GetWorkflowError()
	require.Error(t, err)

	var appErr *temporal.ApplicationError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, orderactivities.ErrorTypeEmptyCart, appErr.Type())
}
