// Package migrations owns the marketplace schema. Adapters still auto-migrate their own tables on
// construction; Run lets operators create everything up front.
package migrations

import (
	"fmt"

	"gorm.io/gorm"

	accountspostgres "github.com/levaja/marketplace-api/internal/domains/accounts/adapters/persistence/postgres"
	cartpostgres "github.com/levaja/marketplace-api/internal/domains/cart/adapters/persistence/postgres"
	catalogpostgres "github.com/levaja/marketplace-api/internal/domains/catalog/adapters/persistence/postgres"
	insightspostgres "github.com/levaja/marketplace-api/internal/domains/insights/adapters/persistence/postgres"
	notificationspostgres "github.com/levaja/marketplace-api/internal/domains/notifications/adapters/persistence/postgres"
	orderspostgres "github.com/levaja/marketplace-api/internal/domains/orders/adapters/persistence/postgres"
	promotionspostgres "github.com/levaja/marketplace-api/internal/domains/promotions/adapters/persistence/postgres"
	sectorspostgres "github.com/levaja/marketplace-api/internal/domains/sectors/adapters/persistence/postgres"
	wastagepostgres "github.com/levaja/marketplace-api/internal/domains/wastage/adapters/persistence/postgres"
)

// Step groups the tables of one bounded context.
type Step struct {
	Context string
	Models  []any
}

// Steps lists the schema in dependency order: markets before products, users before sessions.
func Steps() []Step {
	return []Step{
		{"accounts", []any{&accountspostgres.UserRecord{}, &accountspostgres.SessionRecord{}}},
		{"catalog", []any{&catalogpostgres.MarketRecord{}, &catalogpostgres.ProductRecord{}, &catalogpostgres.FavoriteRecord{}}},
		{"cart", []any{&cartpostgres.CartRecord{}}},
		{"orders", []any{&orderspostgres.OrderRecord{}, &orderspostgres.IdempotencyRecord{}}},
		{"sectors", []any{&sectorspostgres.SectorRecord{}}},
		{"promotions", []any{&promotionspostgres.PromotionRecord{}}},
		{"wastage", []any{&wastagepostgres.WastageRecord{}}},
		{"notifications", []any{&notificationspostgres.NotificationRecord{}}},
		{"insights", []any{&insightspostgres.ActivityRecord{}}},
	}
}

// Run applies every step. A nil db is a no-op so in-memory runs can call it unconditionally.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	for _, step := range Steps() {
		if err := db.AutoMigrate(step.Models...); err != nil {
			return fmt.Errorf("migrate %s: %w", step.Context, err)
		}
	}
	return nil
}
