package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	catalogmemory "github.com/levaja/marketplace-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/levaja/marketplace-api/internal/domains/catalog/application"
	catalogtypes "github.com/levaja/marketplace-api/internal/domains/catalog/application/types"
	catalogdomain "github.com/levaja/marketplace-api/internal/domains/catalog/domain"
	"github.com/levaja/marketplace-api/internal/domains/promotions/ports"
	"github.com/levaja/marketplace-api/internal/shared/money"
)

func ptr[T any](v T) *T { return &v }

func TestProducts_ClassifiesByStatus(t *testing.T) {
	now := time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := catalogapp.NewService(catalogmemory.NewProductRepository(), catalogmemory.NewMarketRepository(), catalogmemory.NewFavoriteStore(), catalogapp.WithClock(clock))
	ctx := context.Background()
	_, err := svc.SaveMarket(ctx, &catalogdomain.Market{ID: "1", Name: "Mercado Verde", Location: catalogdomain.Location{Lat: -23.55, Lng: -46.63}})
	require.NoError(t, err)

	for _, in := range []catalogtypes.ProductInput{
		{ID: "near", Name: ptr("Pão"), Category: ptr("Padaria"), MarketID: ptr("1"), Price: ptr(money.MustParse("5")), Quantity: ptr(10), ExpiryDate: ptr(now.Add(48 * time.Hour))},
		{ID: "low", Name: ptr("Arroz"), Category: ptr("Grãos"), MarketID: ptr("1"), Price: ptr(money.MustParse("5")), Quantity: ptr(2), MinQuantity: ptr(5), ExpiryDate: ptr(now.AddDate(0, 3, 0))},
		{ID: "expired", Name: ptr("Leite"), Category: ptr("Laticínios"), MarketID: ptr("1"), Price: ptr(money.MustParse("5")), Quantity: ptr(2), MinQuantity: ptr(5), ExpiryDate: ptr(now.Add(-72 * time.Hour))},
	} {
		_, err := svc.CreateProduct(ctx, in)
		require.NoError(t, err)
	}

	products := NewProducts(svc, clock)
	candidates, err := products.Candidates(ctx)
	require.NoError(t, err)
	byID := map[string][2]bool{}
	for _, c := range candidates {
		byID[c.ProductID] = [2]bool{c.NearExpiry, c.LowStock}
	}
	require.Equal(t, [2]bool{true, false}, byID["near"])
	require.Equal(t, [2]bool{false, true}, byID["low"])
	require.Equal(t, [2]bool{false, false}, byID["expired"])

	require.NoError(t, products.LinkPromotion(ctx, "near", "promo-1"))
	found, err := svc.GetProduct(ctx, "near", catalogtypes.Viewer{})
	require.NoError(t, err)
	require.Equal(t, "promo-1", found.Entity.Product.PromotionID)

	require.ErrorIs(t, products.Exists(ctx, "missing"), ports.ErrProductNotFound)
}
