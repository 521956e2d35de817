package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/levaja/marketplace-api/internal/domains/cart/adapters/memory"
	"github.com/levaja/marketplace-api/internal/domains/cart/domain"
	"github.com/levaja/marketplace-api/internal/domains/cart/ports"
	"github.com/levaja/marketplace-api/internal/shared/money"
)

type fakeLookup struct {
	items map[string]domain.Item
}

func (f *fakeLookup) Lookup(_ context.Context, productID string) (domain.Item, error) {
	item, ok := f.items[productID]
	if !ok {
		return domain.Item{}, ports.ErrProductNotFound
	}
	return item, nil
}

func newCartService() *Service {
	lookup := &fakeLookup{items: map[string]domain.Item{
		"1": {ProductID: "1", ProductName: "Pão Integral Artesanal", UnitPrice: money.MustParse("8.50"), OriginalPrice: money.MustParse("12.90"), AvailableQuantity: 15},
		"2": {ProductID: "2", ProductName: "Iogurte Natural Orgânico", UnitPrice: money.MustParse("4.20"), OriginalPrice: money.MustParse("6.50"), AvailableQuantity: 2},
		"3": {ProductID: "3", ProductName: "Banana Prata", UnitPrice: money.MustParse("3.90"), OriginalPrice: money.MustParse("5.50"), AvailableQuantity: 0},
	}}
	now := time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)
	return NewService(memory.NewRepository(), lookup, WithClock(func() time.Time { return now }))
}

func TestGet_CreatesCartOnFirstAccess(t *testing.T) {
	svc := newCartService()
	cart, err := svc.Get(context.Background(), "u-1")
	require.NoError(t, err)
	require.NotEmpty(t, cart.ID)
	require.Empty(t, cart.Items)

	again, err := svc.Get(context.Background(), "u-1")
	require.NoError(t, err)
	require.Equal(t, cart.ID, again.ID)

	_, err = svc.Get(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestAddItem_RecalculatesTotals(t *testing.T) {
	svc := newCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u-1", "1", 2)
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "u-1", "2", 5)
	require.NoError(t, err)

	require.Len(t, cart.Items, 2)
	require.Equal(t, 2, cart.Items[1].SelectedQuantity)
	totals := cart.Totals()
	require.Equal(t, "25.4", totals.Total.String())
	require.Equal(t, "38.8", totals.OriginalTotal.String())
	require.Equal(t, "13.4", totals.Savings.String())
	require.Equal(t, 4, totals.ItemCount)
}

func TestAddItem_Errors(t *testing.T) {
	svc := newCartService()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u-1", "404", 1)
	require.ErrorIs(t, err, ports.ErrProductNotFound)

	_, err = svc.AddItem(ctx, "u-1", "3", 1)
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.AddItem(ctx, "u-1", "1", 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateRemoveClear(t *testing.T) {
	svc := newCartService()
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "u-1", "1", 1)
	require.NoError(t, err)
	itemID := cart.Items[0].ID

	cart, err = svc.UpdateQuantity(ctx, "u-1", itemID, 4)
	require.NoError(t, err)
	require.Equal(t, 4, cart.Totals().ItemCount)

	_, err = svc.UpdateQuantity(ctx, "u-1", "missing", 1)
	require.ErrorIs(t, err, domain.ErrItemNotFound)

	cart, err = svc.RemoveItem(ctx, "u-1", itemID)
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	_, err = svc.RemoveItem(ctx, "u-1", itemID)
	require.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = svc.AddItem(ctx, "u-1", "2", 1)
	require.NoError(t, err)
	cart, err = svc.Clear(ctx, "u-1")
	require.NoError(t, err)
	require.True(t, cart.IsEmpty())

	other, err := svc.Get(ctx, "u-2")
	require.NoError(t, err)
	require.Empty(t, other.Items)
}
