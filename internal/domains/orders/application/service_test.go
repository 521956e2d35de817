package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	cartdomain "github.com/levaja/marketplace-api/internal/domains/cart/domain"
	"github.com/levaja/marketplace-api/internal/domains/orders/adapters/memory"
	types "github.com/levaja/marketplace-api/internal/domains/orders/application/types"
	"github.com/levaja/marketplace-api/internal/domains/orders/domain"
	"github.com/levaja/marketplace-api/internal/domains/orders/ports"
	"github.com/levaja/marketplace-api/internal/shared/money"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)

type fakeCarts struct {
	carts    map[string]*cartdomain.Cart
	clearErr error
}

func (f *fakeCarts) Get(_ context.Context, userID string) (*cartdomain.Cart, error) {
	if cart, ok := f.carts[userID]; ok {
		return cart.Clone(), nil
	}
	return &cartdomain.Cart{UserID: userID}, nil
}

func (f *fakeCarts) Clear(_ context.Context, userID string) error {
	if f.clearErr != nil {
		return f.clearErr
	}
	delete(f.carts, userID)
	return nil
}

type recordingNotifier struct {
	notices []ports.OrderNotice
	err     error
}

func (n *recordingNotifier) NotifyOrder(_ context.Context, notice ports.OrderNotice) error {
	if n.err != nil {
		return n.err
	}
	n.notices = append(n.notices, notice)
	return nil
}

type ledger map[string]int

func (l ledger) AddLoyaltyPoints(_ context.Context, userID string, points int) error {
	l[userID] += points
	return nil
}

type fixture struct {
	svc      *Service
	carts    *fakeCarts
	notifier *recordingNotifier
	points   ledger
}

func fullCart(userID string) *cartdomain.Cart {
	return &cartdomain.Cart{ID: "c-" + userID, UserID: userID, Items: []cartdomain.Item{
		{ID: "l-1", ProductID: "1", ProductName: "Pão Integral Artesanal", MarketID: "1", MarketName: "Mercado Verde",
			UnitPrice: money.MustParse("8.50"), OriginalPrice: money.MustParse("12.90"), AvailableQuantity: 15, SelectedQuantity: 2},
		{ID: "l-2", ProductID: "2", ProductName: "Iogurte Natural Orgânico", MarketID: "2", MarketName: "Supermercado Economia",
			UnitPrice: money.MustParse("4.20"), OriginalPrice: money.MustParse("6.50"), AvailableQuantity: 8, SelectedQuantity: 3},
	}}
}

func newFixture() *fixture {
	f := &fixture{
		carts:    &fakeCarts{carts: map[string]*cartdomain.Cart{"u-1": fullCart("u-1"), "u-2": fullCart("u-2")}},
		notifier: &recordingNotifier{},
		points:   ledger{},
	}
	f.svc = NewService(memory.NewRepository(), f.carts,
		WithIdempotencyStore(memory.NewIdempotencyStore()),
		WithNotifier(f.notifier),
		WithLoyaltyLedger(f.points),
		WithClock(func() time.Time { return fixedNow }),
	)
	return f
}

func pickup(userID string) types.CheckoutInput {
	return types.CheckoutInput{UserID: userID, DeliveryType: "pickup", PaymentMethod: "pix"}
}

func TestPlaceOrder_ConvertsCart(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	order, err := f.svc.PlaceOrder(ctx, pickup("u-1"))
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, "29.6", order.Total.String())
	assert.Equal(t, 5, order.ItemCount)
	assert.Equal(t, fixedNow.Add(domain.PickupLeadTime), order.EstimatedDelivery)
	assert.Equal(t, 29, f.points["u-1"])
	assert.NotContains(t, f.carts.carts, "u-1")

	_, err = f.svc.PlaceOrder(ctx, pickup("u-1"))
	require.ErrorIs(t, err, ErrEmptyCart)

	require.NoError(t, f.svc.NotifyPlaced(ctx, order.ID))
	require.Len(t, f.notifier.notices, 1)
	assert.Equal(t, "u-1", f.notifier.notices[0].UserID)
}

func TestPlaceOrder_RejectsInvalidCheckout(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.PlaceOrder(ctx, types.CheckoutInput{UserID: "u-1", DeliveryType: "delivery", PaymentMethod: "pix"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrMissingAddress)

	_, err = f.svc.PlaceOrder(ctx, types.CheckoutInput{UserID: "u-1", DeliveryType: "pickup", PaymentMethod: "barter"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.svc.PlaceOrder(ctx, types.CheckoutInput{DeliveryType: "pickup", PaymentMethod: "pix"})
	require.ErrorIs(t, err, ErrInvalidInput)

	assert.Contains(t, f.carts.carts, "u-1")
}

func TestPlaceOrder_IdempotencyKeyReplays(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	input := pickup("u-1")
	input.IdempotencyKey = "checkout-42"

	first, err := f.svc.PlaceOrder(ctx, input)
	require.NoError(t, err)
	second, err := f.svc.PlaceOrder(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 29, f.points["u-1"])

	input.PaymentMethod = "cash"
	_, err = f.svc.PlaceOrder(ctx, input)
	require.ErrorIs(t, err, ports.ErrIdempotencyConflict)
}

// slowCarts widens the window between reading and clearing the cart.
type slowCarts struct {
	mu    sync.Mutex
	carts map[string]*cartdomain.Cart
}

func (c *slowCarts) Get(_ context.Context, userID string) (*cartdomain.Cart, error) {
	time.Sleep(time.Millisecond)
	c.mu.Lock()
	defer c.mu.Unlock()
	if cart, ok := c.carts[userID]; ok {
		return cart.Clone(), nil
	}
	return &cartdomain.Cart{UserID: userID}, nil
}

func (c *slowCarts) Clear(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.carts, userID)
	return nil
}

func TestPlaceOrder_ConcurrentReplaysPlaceOneOrder(t *testing.T) {
	ctx := context.Background()
	for round := 0; round < 50; round++ {
		repo := memory.NewRepository()
		carts := &slowCarts{carts: map[string]*cartdomain.Cart{"u-1": fullCart("u-1")}}
		svc := NewService(repo, carts, WithIdempotencyStore(memory.NewIdempotencyStore()))
		input := pickup("u-1")
		input.IdempotencyKey = "k"

		var wg sync.WaitGroup
		ids := make([]string, 2)
		errs := make([]error, 2)
		for i := range ids {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				order, err := svc.PlaceOrder(ctx, input)
				errs[i] = err
				if order != nil {
					ids[i] = order.ID
				}
			}(i)
		}
		wg.Wait()

		require.NoError(t, errs[0])
		require.NoError(t, errs[1])
		assert.Equal(t, ids[0], ids[1])
		orders, err := repo.ListByUser(ctx, "u-1")
		require.NoError(t, err)
		require.Len(t, orders, 1, "round %d", round)
	}
}

func TestPlaceOrder_IdempotencyKeysAreScopedPerUser(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	first := pickup("u-1")
	first.IdempotencyKey = "checkout-1"
	second := pickup("u-2")
	second.IdempotencyKey = "checkout-1"

	a, err := f.svc.PlaceOrder(ctx, first)
	require.NoError(t, err)
	b, err := f.svc.PlaceOrder(ctx, second)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, "u-2", b.UserID)
}

func TestPlaceOrder_ReportsCartClearFailure(t *testing.T) {
	f := newFixture()
	f.carts.clearErr = errors.New("carts unavailable")
	_, err := f.svc.PlaceOrder(context.Background(), pickup("u-1"))
	require.ErrorContains(t, err, "cart not cleared")
}

func TestOrderQueries_AreScopedToOwner(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	mine, err := f.svc.PlaceOrder(ctx, pickup("u-1"))
	require.NoError(t, err)
	_, err = f.svc.PlaceOrder(ctx, pickup("u-2"))
	require.NoError(t, err)

	list, err := f.svc.ListOrders(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = f.svc.GetOrder(ctx, types.OrderIdentifier{OrderID: mine.ID, UserID: "u-2"})
	require.ErrorIs(t, err, ports.ErrNotFound)

	all, err := f.svc.ListAllOrders(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = f.svc.ListAllOrders(ctx, "lost")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_FollowsLifecycleAndNotifies(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	order, err := f.svc.PlaceOrder(ctx, pickup("u-1"))
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, types.StatusChange{OrderID: order.ID, Status: "delivered"})
	require.ErrorIs(t, err, ErrConflict)

	updated, err := f.svc.UpdateStatus(ctx, types.StatusChange{OrderID: order.ID, Status: "confirmed"})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
	require.Len(t, f.notifier.notices, 1)
	assert.Contains(t, f.notifier.notices[0].Message, "confirmed")

	confirmed, err := f.svc.ListAllOrders(ctx, "confirmed")
	require.NoError(t, err)
	assert.Len(t, confirmed, 1)

	_, err = f.svc.UpdateStatus(ctx, types.StatusChange{OrderID: "missing", Status: "confirmed"})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestCancelOrder_OnlyBeforePreparation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	order, err := f.svc.PlaceOrder(ctx, pickup("u-1"))
	require.NoError(t, err)

	_, err = f.svc.CancelOrder(ctx, types.OrderIdentifier{OrderID: order.ID, UserID: "u-2"})
	require.ErrorIs(t, err, ports.ErrNotFound)

	for _, status := range []string{"confirmed", "preparing"} {
		_, err = f.svc.UpdateStatus(ctx, types.StatusChange{OrderID: order.ID, Status: status})
		require.NoError(t, err)
	}
	_, err = f.svc.CancelOrder(ctx, types.OrderIdentifier{OrderID: order.ID, UserID: "u-1"})
	require.ErrorIs(t, err, ErrConflict)

	other, err := f.svc.PlaceOrder(ctx, pickup("u-2"))
	require.NoError(t, err)
	cancelled, err := f.svc.CancelOrder(ctx, types.OrderIdentifier{OrderID: other.ID, UserID: "u-2"})
	require.NoError(t, err)
	assert.True(t, cancelled.IsCancelled())
}

func TestSustainabilityStats_FromPlacedOrders(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.svc.PlaceOrder(ctx, pickup("u-1"))
	require.NoError(t, err)

	stats, err := f.svc.SustainabilityStats(ctx, "u-1", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.TotalImpact.ItemsRescued)
	assert.Equal(t, 1, stats.Level)
	assert.Equal(t, 1, stats.GlobalRanking)
	require.NotEmpty(t, stats.Badges)
	assert.Equal(t, "first-rescue", stats.Badges[0].ID)

	_, err = f.svc.SustainabilityStats(ctx, "", fixedNow)
	require.ErrorIs(t, err, ErrInvalidInput)
}
