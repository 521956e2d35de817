package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/levaja/marketplace-api/internal/domains/catalog/adapters/memory"
	types "github.com/levaja/marketplace-api/internal/domains/catalog/application/types"
	"github.com/levaja/marketplace-api/internal/domains/catalog/domain"
	"github.com/levaja/marketplace-api/internal/domains/catalog/ports"
	"github.com/levaja/marketplace-api/internal/shared/money"
)

var fixedNow = time.Date(2024, 12, 6, 10, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func newCatalog(t *testing.T) *Service {
	t.Helper()
	markets := memory.NewMarketRepository()
	svc := NewService(memory.NewProductRepository(), markets, memory.NewFavoriteStore(), WithClock(func() time.Time { return fixedNow }))
	ctx := context.Background()
	_, err := svc.SaveMarket(ctx, &domain.Market{ID: "1", Name: "Mercado Verde", Location: domain.Location{Lat: -23.5505, Lng: -46.6333}, ReferenceDistanceKm: 0.8})
	require.NoError(t, err)
	_, err = svc.SaveMarket(ctx, &domain.Market{ID: "2", Name: "Supermercado Economia", Location: domain.Location{Lat: -23.5515, Lng: -46.6343}, ReferenceDistanceKm: 1.2})
	require.NoError(t, err)

	seed := []types.ProductInput{
		{ID: "1", Name: ptr("Pão Integral Artesanal"), Category: ptr("Padaria"), MarketID: ptr("1"), Barcode: ptr("7891234567890"),
			Price: ptr(money.MustParse("8.50")), OriginalPrice: ptr(money.MustParse("12.90")), Quantity: ptr(15), MinQuantity: ptr(5),
			ExpiryDate: ptr(fixedNow.Add(48 * time.Hour))},
		{ID: "2", Name: ptr("Iogurte Natural Orgânico"), Category: ptr("Laticínios"), MarketID: ptr("2"),
			Price: ptr(money.MustParse("4.20")), OriginalPrice: ptr(money.MustParse("6.50")), Quantity: ptr(8), MinQuantity: ptr(3),
			ExpiryDate: ptr(fixedNow.Add(24 * time.Hour))},
	}
	for _, in := range seed {
		_, err := svc.CreateProduct(ctx, in)
		require.NoError(t, err)
	}
	return svc
}

func TestCreateProduct_ResolvesMarketAndDefaults(t *testing.T) {
	svc := newCatalog(t)
	created, err := svc.CreateProduct(context.Background(), types.ProductInput{
		Name: ptr("Banana Prata"), Category: ptr("Frutas"), MarketID: ptr("1"),
		Price: ptr(money.MustParse("3.90")), Quantity: ptr(20), ExpiryDate: ptr(fixedNow.Add(72 * time.Hour)),
	})
	require.NoError(t, err)
	product := created.Entity.Product
	require.NotEmpty(t, product.ID)
	require.Equal(t, "Mercado Verde", product.MarketName)
	require.Equal(t, fixedNow, product.EntryDate)
	require.True(t, product.OriginalPrice.Equal(product.Price))
	require.Equal(t, domain.StatusNearExpiry, created.Entity.Status)
}

func TestCreateProduct_RejectsInvalidInput(t *testing.T) {
	svc := newCatalog(t)
	_, err := svc.CreateProduct(context.Background(), types.ProductInput{Name: ptr("x"), Category: ptr("y"), MarketID: ptr("9"), ExpiryDate: ptr(fixedNow)})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrUnknownMarket)

	_, err = svc.CreateProduct(context.Background(), types.ProductInput{Name: ptr("x"), Category: ptr("y"), MarketID: ptr("1"), Barcode: ptr("12")})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateProduct_IsPartial(t *testing.T) {
	svc := newCatalog(t)
	updated, err := svc.UpdateProduct(context.Background(), types.ProductInput{ID: "1", Quantity: ptr(2)})
	require.NoError(t, err)
	require.Equal(t, 2, updated.Entity.Product.Quantity)
	require.Equal(t, "Pão Integral Artesanal", updated.Entity.Product.Name)

	_, err = svc.UpdateProduct(context.Background(), types.ProductInput{ID: "404", Quantity: ptr(2)})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListProducts_FavoritesPerViewer(t *testing.T) {
	svc := newCatalog(t)
	ctx := context.Background()

	added, err := svc.ToggleFavorite(ctx, "u-1", "2")
	require.NoError(t, err)
	require.True(t, added)

	page, err := svc.ListProducts(ctx, domain.ProductFilter{OnlyFavorites: true}, types.Viewer{UserID: "u-1"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.True(t, page.Items[0].IsFavorite)

	other, err := svc.ListProducts(ctx, domain.ProductFilter{OnlyFavorites: true}, types.Viewer{UserID: "u-2"})
	require.NoError(t, err)
	require.Empty(t, other.Items)

	anonymous, err := svc.ListProducts(ctx, domain.ProductFilter{OnlyFavorites: true}, types.Viewer{})
	require.NoError(t, err)
	require.Zero(t, anonymous.Total)

	_, err = svc.ListProducts(ctx, domain.ProductFilter{SortBy: "popularity"}, types.Viewer{})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestListProducts_DistanceFromViewerLocation(t *testing.T) {
	svc := newCatalog(t)
	origin := &domain.Location{Lat: -23.5505, Lng: -46.6333}
	page, err := svc.ListProducts(context.Background(), domain.ProductFilter{SortBy: domain.SortByDistance}, types.Viewer{Location: origin})
	require.NoError(t, err)
	require.Equal(t, "1", page.Items[0].Product.ID)
	require.Equal(t, 0.0, page.Items[0].MarketDistance)
	require.InDelta(t, 0.15, page.Items[1].MarketDistance, 0.01)
}

func TestFindByBarcode(t *testing.T) {
	svc := newCatalog(t)
	found, err := svc.FindByBarcode(context.Background(), "7891234567890")
	require.NoError(t, err)
	require.Equal(t, "1", found.Entity.Product.ID)

	_, err = svc.FindByBarcode(context.Background(), "789")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.FindByBarcode(context.Background(), "0000000000000")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestCreateProduct_BarcodeIsUnique(t *testing.T) {
	svc := newCatalog(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, types.ProductInput{ID: "3", Name: ptr("Pão Francês"), Category: ptr("Padaria"), MarketID: ptr("1"),
		Barcode: ptr("7891234567890"), Price: ptr(money.MustParse("1.00")), ExpiryDate: ptr(fixedNow.Add(24 * time.Hour))})
	require.ErrorIs(t, err, ErrConflict)
	require.ErrorIs(t, err, ports.ErrDuplicateBarcode)

	_, err = svc.UpdateProduct(ctx, types.ProductInput{ID: "2", Barcode: ptr("7891234567890")})
	require.ErrorIs(t, err, ErrConflict)

	for i := 0; i < 20; i++ {
		found, err := svc.FindByBarcode(ctx, "7891234567890")
		require.NoError(t, err)
		require.Equal(t, "1", found.Entity.Product.ID)
	}
}

func TestAdjustStock_NeverNegative(t *testing.T) {
	svc := newCatalog(t)
	_, err := svc.AdjustStock(context.Background(), "2", -9)
	require.ErrorIs(t, err, ErrConflict)

	result, err := svc.AdjustStock(context.Background(), "2", -8)
	require.NoError(t, err)
	require.Equal(t, domain.StatusOutOfStock, result.Entity.Status)
}

func TestDeleteProduct_DropsFavorites(t *testing.T) {
	svc := newCatalog(t)
	ctx := context.Background()
	_, err := svc.ToggleFavorite(ctx, "u-1", "1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, "1"))
	favorites, err := svc.ListFavorites(ctx, types.Viewer{UserID: "u-1"})
	require.NoError(t, err)
	require.Empty(t, favorites)

	require.True(t, errors.Is(svc.DeleteProduct(ctx, "1"), ports.ErrNotFound))
}

func TestToggleFavorite_RequiresUserAndProduct(t *testing.T) {
	svc := newCatalog(t)
	_, err := svc.ToggleFavorite(context.Background(), "", "1")
	require.ErrorIs(t, err, ErrAuthenticationRequired)
	_, err = svc.ToggleFavorite(context.Background(), "u-1", "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestListMarkets_SortedByDistance(t *testing.T) {
	svc := newCatalog(t)
	views, err := svc.ListMarkets(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, []float64{0.8, 1.2}, []float64{views[0].DistanceKm, views[1].DistanceKm})

	origin := &domain.Location{Lat: -23.5515, Lng: -46.6343}
	views, err = svc.ListMarkets(context.Background(), origin)
	require.NoError(t, err)
	require.Equal(t, "2", views[0].Market.ID)

	_, err = svc.ListMarkets(context.Background(), &domain.Location{Lat: 200})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetMarket(context.Background(), "9", nil)
	require.ErrorIs(t, err, ports.ErrMarketNotFound)
}

func TestSuggestions(t *testing.T) {
	svc := newCatalog(t)
	result, err := svc.Suggestions(context.Background(), "pão", 5)
	require.NoError(t, err)
	require.NotEmpty(t, result)
	require.Equal(t, "Pão Integral Artesanal", result[0].Text)

	empty, err := svc.Suggestions(context.Background(), " ", 5)
	require.NoError(t, err)
	require.Empty(t, empty)
}
