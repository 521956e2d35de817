package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/levaja/marketplace-api/internal/shared/money"
)

// Status is the derived stock/expiry state of a product.
type Status string

const (
	StatusActive     Status = "active"
	StatusExpired    Status = "expired"
	StatusNearExpiry Status = "near_expiry"
	StatusLowStock   Status = "low_stock"
	StatusOutOfStock Status = "out_of_stock"
)

var (
	ErrEmptyProductID    = errors.New("product id is required")
	ErrEmptyName         = errors.New("product name is required")
	ErrEmptyCategory     = errors.New("product category is required")
	ErrInvalidBarcode    = errors.New("barcode must have exactly 13 digits")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrOriginalBelow     = errors.New("original price must not be lower than price")
	ErrInvalidQuantity   = errors.New("quantity must not be negative")
	ErrInvalidRating     = errors.New("rating must be between 0 and 5")
	ErrMissingExpiry     = errors.New("expiry date is required")
	ErrEmptyMarketID     = errors.New("market id is required")
	ErrInvalidStatus     = errors.New("product status is invalid")
	ErrInsufficientStock = errors.New("stock cannot go below zero")
)

var barcodePattern = regexp.MustCompile(`^\d{13}$`)

// NutritionalInfo carries per-portion nutrition facts.
type NutritionalInfo struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Fiber    float64
	Sodium   float64
}

// Product models a sellable item stocked by a market.
type Product struct {
	ID            string
	Name          string
	Barcode       string
	Category      string
	Brand         string
	SectorID      string
	MarketID      string
	MarketName    string
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	Quantity      int
	MinQuantity   int
	ExpiryDate    time.Time
	EntryDate     time.Time
	Images        []string
	Description   string
	Nutrition     *NutritionalInfo
	Rating        float64
	ReviewCount   int
	Tags          []string
	Supplier      string
	PromotionID   string
}

// IsValidBarcode reports whether the value is a 13 digit EAN code.
func IsValidBarcode(barcode string) bool {
	return barcodePattern.MatchString(barcode)
}

// Normalize trims free-text fields and defaults the original price.
func (p *Product) Normalize() {
	p.ID = strings.TrimSpace(p.ID)
	p.Name = strings.TrimSpace(p.Name)
	p.Barcode = strings.TrimSpace(p.Barcode)
	p.Category = strings.TrimSpace(p.Category)
	p.Brand = strings.TrimSpace(p.Brand)
	p.Supplier = strings.TrimSpace(p.Supplier)
	if p.OriginalPrice.IsZero() {
		p.OriginalPrice = p.Price
	}
}

// Validate enforces the product invariants.
func (p *Product) Validate() error {
	if p.ID == "" {
		return ErrEmptyProductID
	}
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Category == "" {
		return ErrEmptyCategory
	}
	if p.MarketID == "" {
		return ErrEmptyMarketID
	}
	if p.Barcode != "" && !IsValidBarcode(p.Barcode) {
		return ErrInvalidBarcode
	}
	if p.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if p.OriginalPrice.LessThan(p.Price) {
		return ErrOriginalBelow
	}
	if p.Quantity < 0 || p.MinQuantity < 0 {
		return ErrInvalidQuantity
	}
	if p.Rating < 0 || p.Rating > 5 {
		return ErrInvalidRating
	}
	if p.ExpiryDate.IsZero() {
		return ErrMissingExpiry
	}
	return nil
}

// AdjustStock applies a signed delta to the stock level.
func (p *Product) AdjustStock(delta int) error {
	if p.Quantity+delta < 0 {
		return ErrInsufficientStock
	}
	p.Quantity += delta
	return nil
}

// DiscountPercentage is the rounded reduction from the original price.
func (p *Product) DiscountPercentage() int {
	return money.Percent(p.OriginalPrice, p.Price)
}

// DaysToExpiry counts whole days until the product expires.
func (p *Product) DaysToExpiry(now time.Time) int {
	return DaysUntil(now, p.ExpiryDate)
}

// IsExpired reports whether the expiry date lies at least a full day behind now.
func (p *Product) IsExpired(now time.Time) bool {
	return p.DaysToExpiry(now) < 0
}

// IsNearExpiry reports whether the product expires inside the look-ahead window.
func (p *Product) IsNearExpiry(now time.Time) bool {
	days := p.DaysToExpiry(now)
	return days >= 0 && days <= NearExpiryWindowDays
}

// IsLowStock reports whether stock dropped below the configured minimum.
func (p *Product) IsLowStock() bool {
	return p.Quantity > 0 && p.Quantity < p.MinQuantity
}

// Status derives the product state; expiry outranks stock conditions.
func (p *Product) Status(now time.Time) Status {
	switch {
	case p.IsExpired(now):
		return StatusExpired
	case p.Quantity == 0:
		return StatusOutOfStock
	case p.IsNearExpiry(now):
		return StatusNearExpiry
	case p.IsLowStock():
		return StatusLowStock
	default:
		return StatusActive
	}
}

// ParseStatus validates a status filter value.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case StatusActive, StatusExpired, StatusNearExpiry, StatusLowStock, StatusOutOfStock:
		return status, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Clone returns a deep copy safe to hand across adapter boundaries.
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Images = append([]string(nil), p.Images...)
	clone.Tags = append([]string(nil), p.Tags...)
	if p.Nutrition != nil {
		n := *p.Nutrition
		clone.Nutrition = &n
	}
	return &clone
}
