//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levaja/marketplace-api/internal/domains/orders/domain"
	"github.com/levaja/marketplace-api/internal/domains/orders/ports"
	"github.com/levaja/marketplace-api/internal/platform/postgres/postgrestest"
	"github.com/levaja/marketplace-api/internal/shared/money"
)

func TestRepository_PersistsLifecycle(t *testing.T) {
	db := postgrestest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	items := []domain.Item{{ProductID: "1", ProductName: "Pão Integral Artesanal", UnitPrice: money.MustParse("8.50"), OriginalPrice: money.MustParse("12.90"), Quantity: 2}}
	address := &domain.Address{Street: "Rua das Flores", Number: "123", City: "São Paulo", ZipCode: "01234-567"}
	order, err := domain.New("o-1", "u-1", items, domain.DeliveryDelivery, address, domain.PaymentPix, "", now)
	require.NoError(t, err)

	saved, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, "17", saved.Total.String())
	assert.Equal(t, "Rua das Flores", saved.DeliveryAddress.Street)
	assert.Equal(t, 2, saved.SustainabilityImpact.ItemsRescued)

	require.NoError(t, order.TransitionTo(domain.StatusConfirmed, now.Add(time.Minute)))
	updated, err := repo.Save(ctx, order)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)

	list, err := repo.ListByUser(ctx, "u-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "o-1"))
	_, err = repo.GetByID(ctx, "o-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "o-1"))
}

func TestIdempotencyStore_DetectsConflicts(t *testing.T) {
	db := postgrestest.Start(t)
	_ = NewRepository(db)
	store := NewIdempotencyStore(db)
	ctx := context.Background()

	missing, err := store.Get(ctx, "k-1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	record := ports.IdempotencyRecord{Key: "k-1", UserID: "u-1", RequestHash: "abc", OrderID: "o-1"}
	_, err = store.Save(ctx, record)
	require.NoError(t, err)

	again, err := store.Save(ctx, record)
	require.NoError(t, err)
	assert.Equal(t, "o-1", again.OrderID)

	record.RequestHash = "def"
	_, err = store.Save(ctx, record)
	assert.ErrorIs(t, err, ports.ErrIdempotencyConflict)
}
