package types

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/levaja/marketplace-api/internal/domains/catalog/domain"
	"github.com/levaja/marketplace-api/internal/shared/projection"
)

// Viewer identifies who is browsing and from where. Both fields are optional.
type Viewer struct {
	UserID   string
	Location *domain.Location
}

// ProductProjection is a derived product view plus persistence timestamps.
type ProductProjection = projection.Projection[domain.ProductView]

// MarketView is a market with the distance computed for the caller.
type MarketView struct {
	Market     *domain.Market
	DistanceKm float64
}

// ProductInput carries create and partial-update fields. Nil pointers are left untouched on update.
type ProductInput struct {
	ID            string
	Name          *string
	Barcode       *string
	Category      *string
	Brand         *string
	SectorID      *string
	MarketID      *string
	Price         *decimal.Decimal
	OriginalPrice *decimal.Decimal
	Quantity      *int
	MinQuantity   *int
	ExpiryDate    *time.Time
	EntryDate     *time.Time
	Images        *[]string
	Description   *string
	Nutrition     *domain.NutritionalInfo
	Rating        *float64
	ReviewCount   *int
	Tags          *[]string
	Supplier      *string
	PromotionID   *string
}
