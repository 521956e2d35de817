package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/levaja/marketplace-api/internal/domains/insights/adapters/memory"
	types "github.com/levaja/marketplace-api/internal/domains/insights/application/types"
	"github.com/levaja/marketplace-api/internal/domains/insights/domain"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var fixedNow = time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

type fakeProducts struct{ err error }

func (f fakeProducts) Products(context.Context, time.Time) ([]domain.ProductFact, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []domain.ProductFact{
		{ID: "1", Name: "Pão Integral Artesanal", SectorID: "1", Category: "Padaria", Quantity: 15, DaysToExpiry: 2, NearExpiry: true},
		{ID: "2", Name: "Iogurte Natural Orgânico", SectorID: "2", Category: "Laticínios", Quantity: 2, DaysToExpiry: 1, NearExpiry: true, LowStock: true},
		{ID: "3", Name: "Arroz", SectorID: "1", Category: "Grãos", Quantity: 40, DaysToExpiry: 90},
	}, nil
}

type fakeSales struct{}

func (fakeSales) Sales(context.Context) ([]domain.SaleLine, error) {
	return []domain.SaleLine{
		{OrderID: "o-1", ProductID: "1", ProductName: "Pão Integral Artesanal", Quantity: 2, UnitPrice: dec("8.50"), OriginalPrice: dec("12.90"), SoldAt: fixedNow.Add(-time.Hour)},
		{OrderID: "o-2", ProductID: "2", ProductName: "Iogurte Natural Orgânico", Quantity: 3, UnitPrice: dec("4.20"), OriginalPrice: dec("6.50"), SoldAt: fixedNow.AddDate(0, -1, 0)},
	}, nil
}

type fakePromotions struct{}

func (fakePromotions) RunningCount(context.Context) (int, error) { return 2, nil }

type fakeWastage struct{ gotFrom, gotTo *time.Time }

func (f *fakeWastage) Wastage(_ context.Context, from, to *time.Time, _ string) ([]domain.WastageFact, error) {
	f.gotFrom, f.gotTo = from, to
	return []domain.WastageFact{{ID: "w-1", ProductID: "1", Quantity: 2, Reason: "expired", Cost: dec("17"), ReportedAt: fixedNow}}, nil
}

func newInsights(products fakeProducts, wastage *fakeWastage) *Service {
	return NewService(Sources{
		Products:   products,
		Sales:      fakeSales{},
		Promotions: fakePromotions{},
		Wastage:    wastage,
	}, memory.NewActivityLog(10), WithClock(func() time.Time { return fixedNow }))
}

func TestDashboard_AggregatesSources(t *testing.T) {
	wastage := &fakeWastage{}
	svc := newInsights(fakeProducts{}, wastage)
	ctx := context.Background()
	require.NoError(t, svc.RecordActivity(ctx, types.ActivityInput{UserID: "u-1", Action: "product.created", Description: "Pão"}))

	metrics, err := svc.Dashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, metrics.TotalProducts)
	require.Equal(t, 2, metrics.NearExpiryProducts)
	require.Equal(t, 1, metrics.LowStockProducts)
	require.Equal(t, 2, metrics.ActivePromotions)
	require.Equal(t, "17", metrics.MonthlyRevenue.String())
	require.Equal(t, "17", metrics.WastageValue.String())
	require.Len(t, metrics.TopSellingProducts, 2)
	require.Equal(t, "2", metrics.TopSellingProducts[0].ProductID)
	require.Len(t, metrics.RecentActivity, 1)

	require.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), *wastage.gotFrom)
	require.True(t, wastage.gotTo.Before(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestDashboard_FailsWhenASourceFails(t *testing.T) {
	svc := newInsights(fakeProducts{err: errors.New("catalog offline")}, &fakeWastage{})
	_, err := svc.Dashboard(context.Background())
	require.ErrorContains(t, err, "load products")
}

func TestExpiryAlerts_BySector(t *testing.T) {
	svc := newInsights(fakeProducts{}, &fakeWastage{})
	alerts, err := svc.ExpiryAlerts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, alerts, 2)
	require.Equal(t, domain.PriorityHigh, alerts[0].Priority)

	alerts, err = svc.ExpiryAlerts(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	require.Equal(t, domain.PriorityMedium, alerts[0].Priority)
}

func TestSalesReport(t *testing.T) {
	svc := newInsights(fakeProducts{}, &fakeWastage{})
	report, err := svc.SalesReport(context.Background(), domain.ReportFilter{SectorID: "1"})
	require.NoError(t, err)
	require.Equal(t, 2, report.TotalSales)
	require.Equal(t, 2, report.PromotionalSales)

	from, to := fixedNow, fixedNow.Add(-time.Hour)
	_, err = svc.SalesReport(context.Background(), domain.ReportFilter{From: &from, To: &to})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestExport(t *testing.T) {
	svc := newInsights(fakeProducts{}, &fakeWastage{})
	ctx := context.Background()

	sales, err := svc.Export(ctx, types.ExportRequest{Report: "sales", Format: "csv"})
	require.NoError(t, err)
	require.Equal(t, "sales-report-20241206.csv", sales.Filename)
	require.True(t, strings.HasPrefix(string(sales.Body), "period,product_id"))
	require.Contains(t, string(sales.Body), "all time,,TOTAL,5,29.60")

	wastage, err := svc.Export(ctx, types.ExportRequest{Report: "wastage"})
	require.NoError(t, err)
	require.Contains(t, string(wastage.Body), "w-1,1,,,2,expired,17.00")

	_, err = svc.Export(ctx, types.ExportRequest{Report: "sales", Format: "pdf"})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrUnsupportedFormat)

	_, err = svc.Export(ctx, types.ExportRequest{Report: "inventory", Format: "csv"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestActivityLog(t *testing.T) {
	svc := newInsights(fakeProducts{}, &fakeWastage{})
	ctx := context.Background()
	for _, action := range []string{"user.created", "product.updated", "promotion.deleted"} {
		require.NoError(t, svc.RecordActivity(ctx, types.ActivityInput{UserID: "u-1", Action: action}))
	}
	recent, err := svc.RecentActivity(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "promotion.deleted", recent[0].Action)

	require.ErrorIs(t, svc.RecordActivity(ctx, types.ActivityInput{UserID: "u-1"}), ErrInvalidInput)
}
