package api

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	accountsmemory "github.com/levaja/marketplace-api/internal/domains/accounts/adapters/memory"
	accountsobs "github.com/levaja/marketplace-api/internal/domains/accounts/adapters/observability"
	accountspostgres "github.com/levaja/marketplace-api/internal/domains/accounts/adapters/persistence/postgres"
	accountsapp "github.com/levaja/marketplace-api/internal/domains/accounts/application"
	accountsports "github.com/levaja/marketplace-api/internal/domains/accounts/ports"
	cartcatalog "github.com/levaja/marketplace-api/internal/domains/cart/adapters/catalog"
	cartmemory "github.com/levaja/marketplace-api/internal/domains/cart/adapters/memory"
	cartobs "github.com/levaja/marketplace-api/internal/domains/cart/adapters/observability"
	cartpostgres "github.com/levaja/marketplace-api/internal/domains/cart/adapters/persistence/postgres"
	cartapp "github.com/levaja/marketplace-api/internal/domains/cart/application"
	cartports "github.com/levaja/marketplace-api/internal/domains/cart/ports"
	catalogmemory "github.com/levaja/marketplace-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/levaja/marketplace-api/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/levaja/marketplace-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/levaja/marketplace-api/internal/domains/catalog/application"
	catalogports "github.com/levaja/marketplace-api/internal/domains/catalog/ports"
	insightsmemory "github.com/levaja/marketplace-api/internal/domains/insights/adapters/memory"
	insightsobs "github.com/levaja/marketplace-api/internal/domains/insights/adapters/observability"
	insightspostgres "github.com/levaja/marketplace-api/internal/domains/insights/adapters/persistence/postgres"
	"github.com/levaja/marketplace-api/internal/domains/insights/adapters/sources"
	insightsapp "github.com/levaja/marketplace-api/internal/domains/insights/application"
	insightsports "github.com/levaja/marketplace-api/internal/domains/insights/ports"
	notificationsmemory "github.com/levaja/marketplace-api/internal/domains/notifications/adapters/memory"
	notificationsobs "github.com/levaja/marketplace-api/internal/domains/notifications/adapters/observability"
	notificationspostgres "github.com/levaja/marketplace-api/internal/domains/notifications/adapters/persistence/postgres"
	notificationsapp "github.com/levaja/marketplace-api/internal/domains/notifications/application"
	notificationsports "github.com/levaja/marketplace-api/internal/domains/notifications/ports"
	"github.com/levaja/marketplace-api/internal/domains/orders/adapters/gateways"
	ordersmemory "github.com/levaja/marketplace-api/internal/domains/orders/adapters/memory"
	ordersobs "github.com/levaja/marketplace-api/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/levaja/marketplace-api/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/levaja/marketplace-api/internal/domains/orders/application"
	ordersports "github.com/levaja/marketplace-api/internal/domains/orders/ports"
	promotionscatalog "github.com/levaja/marketplace-api/internal/domains/promotions/adapters/catalog"
	promotionsmemory "github.com/levaja/marketplace-api/internal/domains/promotions/adapters/memory"
	promotionsobs "github.com/levaja/marketplace-api/internal/domains/promotions/adapters/observability"
	promotionspostgres "github.com/levaja/marketplace-api/internal/domains/promotions/adapters/persistence/postgres"
	promotionsapp "github.com/levaja/marketplace-api/internal/domains/promotions/application"
	promotionsports "github.com/levaja/marketplace-api/internal/domains/promotions/ports"
	sectorsmemory "github.com/levaja/marketplace-api/internal/domains/sectors/adapters/memory"
	sectorsobs "github.com/levaja/marketplace-api/internal/domains/sectors/adapters/observability"
	sectorspostgres "github.com/levaja/marketplace-api/internal/domains/sectors/adapters/persistence/postgres"
	sectorsapp "github.com/levaja/marketplace-api/internal/domains/sectors/application"
	sectorsports "github.com/levaja/marketplace-api/internal/domains/sectors/ports"
	wastagecatalog "github.com/levaja/marketplace-api/internal/domains/wastage/adapters/catalog"
	wastagememory "github.com/levaja/marketplace-api/internal/domains/wastage/adapters/memory"
	wastageobs "github.com/levaja/marketplace-api/internal/domains/wastage/adapters/observability"
	wastagepostgres "github.com/levaja/marketplace-api/internal/domains/wastage/adapters/persistence/postgres"
	wastageapp "github.com/levaja/marketplace-api/internal/domains/wastage/application"
	wastageports "github.com/levaja/marketplace-api/internal/domains/wastage/ports"
	platformauth "github.com/levaja/marketplace-api/internal/platform/auth"
	"github.com/levaja/marketplace-api/internal/platform/observability"
	"github.com/levaja/marketplace-api/internal/platform/seed"
)

// activityCapacity bounds the in-memory activity feed.
const activityCapacity = 500

// Services is the decorated use-case graph shared by the API, the worker and the CLI.
type Services struct {
	Accounts      accountsports.Service
	Catalog       catalogports.Service
	Carts         cartports.Service
	Orders        ordersports.Service
	Notifications notificationsports.Service
	Sectors       sectorsports.Service
	Promotions    promotionsports.Service
	Wastage       wastageports.Service
	Insights      insightsports.Service
}

// Seeding returns the subset of services the demo seed writes through.
func (s *Services) Seeding() seed.Services {
	return seed.Services{
		Accounts:   s.Accounts,
		Catalog:    s.Catalog,
		Sectors:    s.Sectors,
		Promotions: s.Promotions,
	}
}

// repositories holds the storage adapters of every context, Postgres-backed or in memory.
type repositories struct {
	users         accountsports.Repository
	sessions      accountsports.SessionStore
	products      catalogports.ProductRepository
	markets       catalogports.MarketRepository
	favorites     catalogports.FavoriteStore
	carts         cartports.Repository
	orders        ordersports.Repository
	idempotency   ordersports.IdempotencyStore
	notifications notificationsports.Repository
	sectors       sectorsports.Repository
	promotions    promotionsports.Repository
	wastage       wastageports.Repository
	activity      insightsports.ActivityRepository
}

func newRepositories(db *gorm.DB) repositories {
	if db == nil {
		return repositories{
			users:         accountsmemory.NewRepository(),
			sessions:      accountsmemory.NewSessionStore(),
			products:      catalogmemory.NewProductRepository(),
			markets:       catalogmemory.NewMarketRepository(),
			favorites:     catalogmemory.NewFavoriteStore(),
			carts:         cartmemory.NewRepository(),
			orders:        ordersmemory.NewRepository(),
			idempotency:   ordersmemory.NewIdempotencyStore(),
			notifications: notificationsmemory.NewRepository(),
			sectors:       sectorsmemory.NewRepository(),
			promotions:    promotionsmemory.NewRepository(),
			wastage:       wastagememory.NewRepository(),
			activity:      insightsmemory.NewActivityLog(activityCapacity),
		}
	}
	return repositories{
		users:         accountspostgres.NewRepository(db),
		sessions:      accountspostgres.NewSessionStore(db),
		products:      catalogpostgres.NewProductRepository(db),
		markets:       catalogpostgres.NewMarketRepository(db),
		favorites:     catalogpostgres.NewFavoriteStore(db),
		carts:         cartpostgres.NewRepository(db),
		orders:        orderspostgres.NewRepository(db),
		idempotency:   orderspostgres.NewIdempotencyStore(db),
		notifications: notificationspostgres.NewRepository(db),
		sectors:       sectorspostgres.NewRepository(db),
		promotions:    promotionspostgres.NewRepository(db),
		wastage:       wastagepostgres.NewRepository(db),
		activity:      insightspostgres.NewActivityLog(db),
	}
}

// BuildServices wires every context on db, or on in-memory adapters when db is nil,
// and wraps each use case in its tracing and metrics decorator.
func BuildServices(cfg *Config, db *gorm.DB, instruments *observability.Instruments) (*Services, error) {
	repos := newRepositories(db)
	logger := instruments.Logger

	tokens, err := platformauth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}
	accounts := accountsobs.New(
		accountsapp.NewService(repos.users, repos.sessions, platformauth.BcryptHasher{Cost: cfg.Auth.BcryptCost}, tokens,
			accountsapp.WithSessionTTL(cfg.Auth.SessionTTL)),
		accountsobs.WithLogger(logger),
		accountsobs.WithTracer(instruments.Tracer("internal.accounts.application")),
		accountsobs.WithMeter(instruments.Meter("internal.accounts.application")),
	)
	catalog := catalogobs.New(
		catalogapp.NewService(repos.products, repos.markets, repos.favorites),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	carts := cartobs.New(
		cartapp.NewService(repos.carts, cartcatalog.NewLookup(catalog)),
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)
	notifications := notificationsobs.New(
		notificationsapp.NewService(repos.notifications),
		notificationsobs.WithLogger(logger),
		notificationsobs.WithTracer(instruments.Tracer("internal.notifications.application")),
		notificationsobs.WithMeter(instruments.Meter("internal.notifications.application")),
	)
	orders := ordersobs.New(
		ordersapp.NewService(repos.orders, gateways.NewCarts(carts),
			ordersapp.WithIdempotencyStore(repos.idempotency),
			ordersapp.WithNotifier(gateways.NewNotifications(notifications)),
			ordersapp.WithLoyaltyLedger(gateways.NewLoyalty(accounts)),
		),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	sectors := sectorsobs.New(
		sectorsapp.NewService(repos.sectors),
		sectorsobs.WithLogger(logger),
		sectorsobs.WithTracer(instruments.Tracer("internal.sectors.application")),
	)
	promotions := promotionsobs.New(
		promotionsapp.NewService(repos.promotions, promotionscatalog.NewProducts(catalog, time.Now)),
		promotionsobs.WithLogger(logger),
		promotionsobs.WithTracer(instruments.Tracer("internal.promotions.application")),
		promotionsobs.WithMeter(instruments.Meter("internal.promotions.application")),
	)
	wastage := wastageobs.New(
		wastageapp.NewService(repos.wastage, wastagecatalog.NewInventory(catalog)),
		wastageobs.WithLogger(logger),
		wastageobs.WithTracer(instruments.Tracer("internal.wastage.application")),
		wastageobs.WithMeter(instruments.Meter("internal.wastage.application")),
	)
	insights := insightsobs.New(
		insightsapp.NewService(insightsapp.Sources{
			Products:   sources.NewCatalog(catalog),
			Sales:      sources.NewOrders(orders),
			Promotions: promotions,
			Wastage:    sources.NewWastage(wastage),
		}, repos.activity),
		insightsobs.WithLogger(logger),
		insightsobs.WithTracer(instruments.Tracer("internal.insights.application")),
	)

	return &Services{
		Accounts:      accounts,
		Catalog:       catalog,
		Carts:         carts,
		Orders:        orders,
		Notifications: notifications,
		Sectors:       sectors,
		Promotions:    promotions,
		Wastage:       wastage,
		Insights:      insights,
	}, nil
}
