package workflows

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/temporal"

	"github.com/levaja/marketplace-api/internal/domains/orders/application"
	types "github.com/levaja/marketplace-api/internal/domains/orders/application/types"
	"github.com/levaja/marketplace-api/internal/domains/orders/domain"
	"github.com/levaja/marketplace-api/internal/domains/orders/ports"
	orderactivities "github.com/levaja/marketplace-api/internal/platform/temporal/activities/orders"
)

type stubService struct {
	ports.Service
	placed    *domain.Order
	placeErr  error
	notified  []string
	notifyErr error
}

func (s *stubService) PlaceOrder(context.Context, types.CheckoutInput) (*domain.Order, error) {
	return s.placed, s.placeErr
}

func (s *stubService) NotifyPlaced(_ context.Context, orderID string) error {
	s.notified = append(s.notified, orderID)
	return s.notifyErr
}

func TestInlineCheckout_IgnoresNotificationFailure(t *testing.T) {
	svc := &stubService{placed: &domain.Order{ID: "o-1"}, notifyErr: errors.New("inbox down")}
	order, err := NewInlineOrderWorkflows(svc).Checkout(context.Background(), types.CheckoutInput{UserID: "u-1"})
	require.NoError(t, err)
	assert.Equal(t, "o-1", order.ID)
	assert.Equal(t, []string{"o-1"}, svc.notified)

	svc = &stubService{placeErr: application.ErrEmptyCart}
	_, err = NewInlineOrderWorkflows(svc).Checkout(context.Background(), types.CheckoutInput{UserID: "u-1"})
	require.ErrorIs(t, err, application.ErrEmptyCart)
	assert.Empty(t, svc.notified)
}

func TestBuildCheckoutWorkflowID(t *testing.T) {
	withKey := buildCheckoutWorkflowID(types.CheckoutInput{UserID: "u-1", IdempotencyKey: " k-1 "}, "trace")
	assert.True(t, strings.HasPrefix(withKey, "order-checkout-idem-"))
	assert.Equal(t, withKey, buildCheckoutWorkflowID(types.CheckoutInput{UserID: "u-1", IdempotencyKey: "k-1"}, "other"))
	assert.NotEqual(t, withKey, buildCheckoutWorkflowID(types.CheckoutInput{UserID: "u-2", IdempotencyKey: "k-1"}, "trace"))

	assert.Equal(t, "order-checkout-u-1-trace", buildCheckoutWorkflowID(types.CheckoutInput{UserID: "u-1"}, "trace"))
}

func TestTranslateWorkflowError(t *testing.T) {
	wrap := func(errType string) error {
		return temporal.NewNonRetryableApplicationError("rejected", errType, nil)
	}
	assert.ErrorIs(t, translateWorkflowError(wrap(orderactivities.ErrorTypeEmptyCart)), application.ErrEmptyCart)
	assert.ErrorIs(t, translateWorkflowError(wrap(orderactivities.ErrorTypeInvalidInput)), application.ErrInvalidInput)
	assert.ErrorIs(t, translateWorkflowError(wrap(orderactivities.ErrorTypeConflict)), application.ErrConflict)
	assert.ErrorIs(t, translateWorkflowError(wrap(orderactivities.ErrorTypeIdempotencyConflict)), ports.ErrIdempotencyConflict)

	plain := errors.New("boom")
	assert.Equal(t, plain, translateWorkflowError(plain))
}

func TestInlineCheckout_ReplayedKeyNotifiesOnce(t *testing.T) {
	svc := &stubService{placed: &domain.Order{ID: "o-1"}}
	inline := NewInlineOrderWorkflows(svc)
	input := types.CheckoutInput{UserID: "u-1", IdempotencyKey: "k-1"}

	_, err := inline.Checkout(context.Background(), input)
	require.NoError(t, err)
	_, err = inline.Checkout(context.Background(), input)
	require.NoError(t, err)

	assert.Equal(t, []string{"o-1"}, svc.notified)
}

func TestRecentSet_EvictsOldest(t *testing.T) {
	set := newRecentSet(2)
	assert.False(t, set.add("o-1"))
	assert.False(t, set.add("o-2"))
	assert.True(t, set.add("o-1"))
	assert.False(t, set.add("o-3"))
	assert.Equal(t, 2, set.len())

	assert.False(t, set.add("o-1"), "o-1 was evicted")
	assert.True(t, set.add("o-3"))
}
