package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	accountsmemory "github.com/levaja/marketplace-api/internal/domains/accounts/adapters/memory"
	accountsapp "github.com/levaja/marketplace-api/internal/domains/accounts/application"
	catalogmemory "github.com/levaja/marketplace-api/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/levaja/marketplace-api/internal/domains/catalog/application"
	catalogtypes "github.com/levaja/marketplace-api/internal/domains/catalog/application/types"
	promotionscatalog "github.com/levaja/marketplace-api/internal/domains/promotions/adapters/catalog"
	promotionsmemory "github.com/levaja/marketplace-api/internal/domains/promotions/adapters/memory"
	promotionsapp "github.com/levaja/marketplace-api/internal/domains/promotions/application"
	sectorsmemory "github.com/levaja/marketplace-api/internal/domains/sectors/adapters/memory"
	sectorsapp "github.com/levaja/marketplace-api/internal/domains/sectors/application"
	platformauth "github.com/levaja/marketplace-api/internal/platform/auth"
)

func newServices(t *testing.T) Services {
	t.Helper()
	issuer, err := platformauth.NewTokenIssuer("seed-secret", "levaja-test", time.Hour)
	require.NoError(t, err)
	catalog := catalogapp.NewService(
		catalogmemory.NewProductRepository(),
		catalogmemory.NewMarketRepository(),
		catalogmemory.NewFavoriteStore(),
	)
	return Services{
		Accounts: accountsapp.NewService(
			accountsmemory.NewRepository(),
			accountsmemory.NewSessionStore(),
			platformauth.BcryptHasher{Cost: bcrypt.MinCost},
			issuer,
		),
		Catalog:    catalog,
		Sectors:    sectorsapp.NewService(sectorsmemory.NewRepository()),
		Promotions: promotionsapp.NewService(promotionsmemory.NewRepository(), promotionscatalog.NewProducts(catalog, time.Now)),
	}
}

func TestDemo_Parses(t *testing.T) {
	ds, err := Demo()
	require.NoError(t, err)

	assert.Equal(t, "demo123", ds.Password)
	assert.Len(t, ds.Users, 6)
	assert.Len(t, ds.Markets, 2)
	assert.Len(t, ds.Products, 7)
	assert.Equal(t, "8.50", ds.Products[0].Price)
}

func TestParse_RequiresPassword(t *testing.T) {
	_, err := Parse([]byte("users: []\n"))
	assert.Error(t, err)
}

func TestApply_SeedsEverythingOnce(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	ds, err := Demo()
	require.NoError(t, err)
	now := time.Now()

	sum, err := Apply(ctx, ds, svc, now, nil)
	require.NoError(t, err)
	assert.Equal(t, Summary{Users: 6, Markets: 2, Sectors: 3, Products: 7, Promotions: 2}, sum)

	again, err := Apply(ctx, ds, svc, now, nil)
	require.NoError(t, err)
	assert.Equal(t, Summary{}, again)

	consumer, err := svc.Accounts.GetUser(ctx, "consumer-1")
	require.NoError(t, err)
	assert.Equal(t, 1250, consumer.LoyaltyPoints)
	assert.Equal(t, []string{"1", "2"}, consumer.Preferences.PreferredMarkets)

	login, err := svc.Accounts.Login(ctx, "joao.silva@levaja.com", "demo123")
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)

	bread, err := svc.Catalog.GetProduct(ctx, "1", catalogtypes.Viewer{})
	require.NoError(t, err)
	assert.Equal(t, "12.9", bread.Entity.Product.OriginalPrice.String())
	assert.WithinDuration(t, now.Add(2*day), bread.Entity.Product.ExpiryDate, time.Second)

	promo, err := svc.Promotions.Get(ctx, "1")
	require.NoError(t, err)
	assert.True(t, promo.IsActive)
	assert.Equal(t, "4", promo.ProductID)
}
