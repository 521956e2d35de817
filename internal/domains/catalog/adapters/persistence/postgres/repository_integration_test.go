//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levaja/marketplace-api/internal/domains/catalog/domain"
	"github.com/levaja/marketplace-api/internal/domains/catalog/ports"
	"github.com/levaja/marketplace-api/internal/platform/postgres/postgrestest"
	"github.com/levaja/marketplace-api/internal/shared/money"
)

func sampleProduct(id, barcode string) *domain.Product {
	return &domain.Product{
		ID:            id,
		Name:          "Iogurte Natural Orgânico",
		Barcode:       barcode,
		Category:      "Laticínios",
		MarketID:      "1",
		Price:         money.MustParse("4.20"),
		OriginalPrice: money.MustParse("6.50"),
		Quantity:      8,
		MinQuantity:   3,
		ExpiryDate:    time.Now().Add(24 * time.Hour).UTC().Truncate(time.Second),
		Tags:          []string{"orgânico", "natural"},
		Nutrition:     &domain.NutritionalInfo{Calories: 61, Protein: 3.5},
	}
}

func TestProductRepository_SaveAndGet(t *testing.T) {
	db := postgrestest.Start(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	saved, err := repo.Save(ctx, sampleProduct("p-1", "7891234567890"))
	require.NoError(t, err)
	assert.True(t, saved.Entity.Price.Equal(money.MustParse("4.20")))
	assert.Equal(t, []string{"orgânico", "natural"}, saved.Entity.Tags)
	assert.Equal(t, 61.0, saved.Entity.Nutrition.Calories)
	assert.False(t, saved.Metadata.CreatedAt.IsZero())

	byBarcode, err := repo.GetByBarcode(ctx, "7891234567890")
	require.NoError(t, err)
	assert.Equal(t, "p-1", byBarcode.Entity.ID)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	_, err = repo.Save(ctx, sampleProduct("p-2", "7891234567890"))
	assert.ErrorIs(t, err, ports.ErrDuplicateBarcode)
}

func TestProductRepository_UpsertAndDelete(t *testing.T) {
	db := postgrestest.Start(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := sampleProduct("p-1", "")
	_, err := repo.Save(ctx, product)
	require.NoError(t, err)

	product.Quantity = 2
	updated, err := repo.Save(ctx, product)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Entity.Quantity)

	_, err = repo.Save(ctx, sampleProduct("p-2", ""))
	require.NoError(t, err)
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, repo.Delete(ctx, "p-1"))
	assert.ErrorIs(t, repo.Delete(ctx, "p-1"), ports.ErrNotFound)
}

func TestMarketRepository_RoundTrip(t *testing.T) {
	db := postgrestest.Start(t)
	repo := NewMarketRepository(db)
	ctx := context.Background()

	_, err := repo.Save(ctx, &domain.Market{ID: "1", Name: "Mercado Verde", Location: domain.Location{Lat: -23.5505, Lng: -46.6333}, ReferenceDistanceKm: 0.8})
	require.NoError(t, err)
	market, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, -23.5505, market.Location.Lat)

	_, err = repo.GetByID(ctx, "2")
	assert.ErrorIs(t, err, ports.ErrMarketNotFound)
}

func TestFavoriteStore_Toggle(t *testing.T) {
	db := postgrestest.Start(t)
	store := NewFavoriteStore(db)
	ctx := context.Background()

	added, err := store.Toggle(ctx, "u-1", "p-1")
	require.NoError(t, err)
	assert.True(t, added)
	_, err = store.Toggle(ctx, "u-1", "p-2")
	require.NoError(t, err)

	ids, err := store.List(ctx, "u-1")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p-1", "p-2"}, ids)

	added, err = store.Toggle(ctx, "u-1", "p-1")
	require.NoError(t, err)
	assert.False(t, added)

	require.NoError(t, store.RemoveProduct(ctx, "p-2"))
	ids, err = store.List(ctx, "u-1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
