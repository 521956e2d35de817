//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/levaja/marketplace-api/internal/domains/cart/domain"
	"github.com/levaja/marketplace-api/internal/domains/cart/ports"
	"github.com/levaja/marketplace-api/internal/platform/postgres/postgrestest"
	"github.com/levaja/marketplace-api/internal/shared/money"
)

func TestRepository_SaveKeepsOneCartPerUser(t *testing.T) {
	db := postgrestest.Start(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.GetByUser(ctx, "u-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	now := time.Now().UTC()
	cart, err := domain.New("c-1", "u-1", now)
	require.NoError(t, err)
	_, err = cart.Add(domain.Item{ID: "l-1", ProductID: "1", UnitPrice: money.MustParse("8.50"), OriginalPrice: money.MustParse("12.90"), AvailableQuantity: 5}, 2, now)
	require.NoError(t, err)

	saved, err := repo.Save(ctx, cart)
	require.NoError(t, err)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, "17", saved.Totals().Total.String())

	cart.Clear(now)
	cleared, err := repo.Save(ctx, cart)
	require.NoError(t, err)
	assert.Empty(t, cleared.Items)
	assert.Equal(t, "c-1", cleared.ID)
}
