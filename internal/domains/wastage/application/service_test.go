package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/levaja/marketplace-api/internal/domains/wastage/adapters/memory"
	types "github.com/levaja/marketplace-api/internal/domains/wastage/application/types"
	"github.com/levaja/marketplace-api/internal/domains/wastage/domain"
	"github.com/levaja/marketplace-api/internal/domains/wastage/ports"
	"github.com/levaja/marketplace-api/internal/shared/money"
)

var fixedNow = time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)

type fakeInventory struct {
	stock    map[string]int
	products map[string]ports.ProductSnapshot
}

func newFakeInventory() *fakeInventory {
	return &fakeInventory{
		stock: map[string]int{"1": 15},
		products: map[string]ports.ProductSnapshot{
			"1": {ID: "1", Name: "Pão Integral Artesanal", SectorID: "1", Category: "Padaria", UnitPrice: money.MustParse("8.50")},
		},
	}
}

func (f *fakeInventory) Snapshot(_ context.Context, id string) (ports.ProductSnapshot, error) {
	p, ok := f.products[id]
	if !ok {
		return ports.ProductSnapshot{}, ports.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeInventory) AdjustStock(_ context.Context, id string, delta int) error {
	if f.stock[id]+delta < 0 {
		return ports.ErrInsufficientStock
	}
	f.stock[id] += delta
	return nil
}

type failingRepo struct{ *memory.Repository }

func (failingRepo) Save(context.Context, *domain.Record) (*domain.Record, error) {
	return nil, errors.New("disk full")
}

func TestRecord_DecrementsStockAndDefaultsCost(t *testing.T) {
	inventory := newFakeInventory()
	svc := NewService(memory.NewRepository(), inventory, WithClock(func() time.Time { return fixedNow }))

	record, err := svc.Record(context.Background(), "u-3", types.RecordInput{ProductID: "1", Quantity: 2, Reason: "expired"})
	require.NoError(t, err)
	require.Equal(t, "17", record.Cost.String())
	require.Equal(t, "Padaria", record.Category)
	require.Equal(t, "u-3", record.ReportedBy)
	require.Equal(t, fixedNow, record.ReportedAt)
	require.Equal(t, 13, inventory.stock["1"])

	cost := decimal.RequireFromString("5")
	record, err = svc.Record(context.Background(), "u-3", types.RecordInput{ProductID: "1", Quantity: 1, Reason: "damaged", Cost: &cost})
	require.NoError(t, err)
	require.Equal(t, "5", record.Cost.String())
}

func TestRecord_Rejections(t *testing.T) {
	inventory := newFakeInventory()
	svc := NewService(memory.NewRepository(), inventory)
	ctx := context.Background()

	_, err := svc.Record(ctx, "u-3", types.RecordInput{ProductID: "1", Quantity: 16, Reason: "expired"})
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.Record(ctx, "u-3", types.RecordInput{ProductID: "404", Quantity: 1, Reason: "expired"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Record(ctx, "u-3", types.RecordInput{ProductID: "1", Quantity: 0, Reason: "expired"})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Record(ctx, "u-3", types.RecordInput{ProductID: "1", Quantity: 1, Reason: "lost"})
	require.ErrorIs(t, err, ErrInvalidInput)

	require.Equal(t, 15, inventory.stock["1"])
}

func TestRecord_RestoresStockWhenSaveFails(t *testing.T) {
	inventory := newFakeInventory()
	svc := NewService(failingRepo{memory.NewRepository()}, inventory)

	_, err := svc.Record(context.Background(), "u-3", types.RecordInput{ProductID: "1", Quantity: 4, Reason: "stolen"})
	require.Error(t, err)
	require.Equal(t, 15, inventory.stock["1"])
}

func TestReport_Filters(t *testing.T) {
	clock := fixedNow.Add(-72 * time.Hour)
	svc := NewService(memory.NewRepository(), newFakeInventory(), WithClock(func() time.Time { return clock }))
	ctx := context.Background()

	_, err := svc.Record(ctx, "u-3", types.RecordInput{ProductID: "1", Quantity: 2, Reason: "expired"})
	require.NoError(t, err)
	clock = fixedNow
	_, err = svc.Record(ctx, "u-3", types.RecordInput{ProductID: "1", Quantity: 1, Reason: "damaged"})
	require.NoError(t, err)

	report, err := svc.Report(ctx, domain.Filter{})
	require.NoError(t, err)
	require.Equal(t, 3, report.TotalQuantity)
	require.Equal(t, "25.5", report.TotalCost.String())
	require.Equal(t, domain.ReasonDamaged, report.Records[0].Reason)

	from := fixedNow.Add(-time.Hour)
	recent, err := svc.List(ctx, domain.Filter{From: &from})
	require.NoError(t, err)
	require.Len(t, recent, 1)

	to := fixedNow.Add(-2 * time.Hour)
	_, err = svc.List(ctx, domain.Filter{From: &from, To: &to})
	require.ErrorIs(t, err, ErrInvalidInput)
}
