// Package seed loads the embedded demo dataset into the marketplace services.
package seed

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	accountstypes "github.com/levaja/marketplace-api/internal/domains/accounts/application/types"
	accountsdomain "github.com/levaja/marketplace-api/internal/domains/accounts/domain"
	accountsports "github.com/levaja/marketplace-api/internal/domains/accounts/ports"
	catalogtypes "github.com/levaja/marketplace-api/internal/domains/catalog/application/types"
	catalogdomain "github.com/levaja/marketplace-api/internal/domains/catalog/domain"
	catalogports "github.com/levaja/marketplace-api/internal/domains/catalog/ports"
	promotionstypes "github.com/levaja/marketplace-api/internal/domains/promotions/application/types"
	promotionsports "github.com/levaja/marketplace-api/internal/domains/promotions/ports"
	sectorstypes "github.com/levaja/marketplace-api/internal/domains/sectors/application/types"
	sectorsports "github.com/levaja/marketplace-api/internal/domains/sectors/ports"
)

//go:embed demo.yaml
var demoYAML []byte

const day = 24 * time.Hour

type Dataset struct {
	Password   string      `yaml:"password"`
	Users      []User      `yaml:"users"`
	Markets    []Market    `yaml:"markets"`
	Sectors    []Sector    `yaml:"sectors"`
	Products   []Product   `yaml:"products"`
	Promotions []Promotion `yaml:"promotions"`
}

type Preferences struct {
	Categories          []string `yaml:"categories"`
	MaxDistance         float64  `yaml:"maxDistance"`
	Notifications       bool     `yaml:"notifications"`
	PreferredMarkets    []string `yaml:"preferredMarkets"`
	DietaryRestrictions []string `yaml:"dietaryRestrictions"`
}

type User struct {
	ID            string       `yaml:"id"`
	Name          string       `yaml:"name"`
	Email         string       `yaml:"email"`
	Role          string       `yaml:"role"`
	SectorID      string       `yaml:"sectorId"`
	Avatar        string       `yaml:"avatar"`
	LoyaltyPoints int          `yaml:"loyaltyPoints"`
	Preferences   *Preferences `yaml:"preferences"`
}

type Market struct {
	ID              string  `yaml:"id"`
	Name            string  `yaml:"name"`
	Address         string  `yaml:"address"`
	Lat             float64 `yaml:"lat"`
	Lng             float64 `yaml:"lng"`
	Distance        float64 `yaml:"distance"`
	Rating          float64 `yaml:"rating"`
	IsOpen          bool    `yaml:"isOpen"`
	OpeningHours    string  `yaml:"openingHours"`
	Delivery        bool    `yaml:"delivery"`
	Pickup          bool    `yaml:"pickup"`
	DeliveryMinutes int     `yaml:"deliveryMinutes"`
	Phone           string  `yaml:"phone"`
	Image           string  `yaml:"image"`
}

type Sector struct {
	ID          string   `yaml:"id"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	ManagerID   string   `yaml:"managerId"`
	Employees   []string `yaml:"employees"`
	Categories  []string `yaml:"categories"`
}

// Product prices are decimal strings; expiry is relative to the seeding time.
type Product struct {
	ID            string   `yaml:"id"`
	Name          string   `yaml:"name"`
	Barcode       string   `yaml:"barcode"`
	Category      string   `yaml:"category"`
	Brand         string   `yaml:"brand"`
	SectorID      string   `yaml:"sectorId"`
	MarketID      string   `yaml:"marketId"`
	Price         string   `yaml:"price"`
	OriginalPrice string   `yaml:"originalPrice"`
	Quantity      int      `yaml:"quantity"`
	MinQuantity   int      `yaml:"minQuantity"`
	ExpiresInDays int      `yaml:"expiresInDays"`
	Images        []string `yaml:"images"`
	Description   string   `yaml:"description"`
	Rating        float64  `yaml:"rating"`
	ReviewCount   int      `yaml:"reviewCount"`
	Tags          []string `yaml:"tags"`
	Supplier      string   `yaml:"supplier"`
}

type Promotion struct {
	ID                 string `yaml:"id"`
	ProductID          string `yaml:"productId"`
	Title              string `yaml:"title"`
	Description        string `yaml:"description"`
	DiscountPercentage int    `yaml:"discountPercentage"`
	EndsInDays         int    `yaml:"endsInDays"`
	Reason             string `yaml:"reason"`
}

// Demo parses the embedded dataset.
func Demo() (Dataset, error) {
	return Parse(demoYAML)
}

func Parse(raw []byte) (Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return Dataset{}, fmt.Errorf("parse seed data: %w", err)
	}
	if ds.Password == "" {
		return Dataset{}, errors.New("seed data has no password")
	}
	return ds, nil
}

// Services are the use cases the seed writes through, so every invariant applies to demo data too.
type Services struct {
	Accounts   accountsports.Service
	Catalog    catalogports.Service
	Sectors    sectorsports.Service
	Promotions promotionsports.Service
}

// Summary counts the records created by one Apply; existing records are skipped.
type Summary struct {
	Users      int
	Markets    int
	Sectors    int
	Products   int
	Promotions int
}

// Apply writes ds through svc. Records whose id already exists are left untouched, so reruns are safe.
func Apply(ctx context.Context, ds Dataset, svc Services, now time.Time, logger *slog.Logger) (Summary, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var sum Summary
	for _, u := range ds.Users {
		created, err := applyUser(ctx, svc.Accounts, u, ds.Password)
		if err != nil {
			return sum, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
		if created {
			sum.Users++
		}
	}
	for _, m := range ds.Markets {
		if _, err := svc.Catalog.GetMarket(ctx, m.ID, nil); err == nil {
			continue
		} else if !errors.Is(err, catalogports.ErrMarketNotFound) {
			return sum, fmt.Errorf("seed market %s: %w", m.ID, err)
		}
		if _, err := svc.Catalog.SaveMarket(ctx, m.toDomain()); err != nil {
			return sum, fmt.Errorf("seed market %s: %w", m.ID, err)
		}
		sum.Markets++
	}
	for _, s := range ds.Sectors {
		if _, err := svc.Sectors.Get(ctx, s.ID); err == nil {
			continue
		} else if !errors.Is(err, sectorsports.ErrNotFound) {
			return sum, fmt.Errorf("seed sector %s: %w", s.ID, err)
		}
		if _, err := svc.Sectors.Create(ctx, s.toInput()); err != nil {
			return sum, fmt.Errorf("seed sector %s: %w", s.ID, err)
		}
		sum.Sectors++
	}
	for _, p := range ds.Products {
		if _, err := svc.Catalog.GetProduct(ctx, p.ID, catalogtypes.Viewer{}); err == nil {
			continue
		} else if !errors.Is(err, catalogports.ErrNotFound) {
			return sum, fmt.Errorf("seed product %s: %w", p.ID, err)
		}
		input, err := p.toInput(now)
		if err != nil {
			return sum, fmt.Errorf("seed product %s: %w", p.ID, err)
		}
		if _, err := svc.Catalog.CreateProduct(ctx, input); err != nil {
			return sum, fmt.Errorf("seed product %s: %w", p.ID, err)
		}
		sum.Products++
	}
	for _, p := range ds.Promotions {
		if _, err := svc.Promotions.Get(ctx, p.ID); err == nil {
			continue
		} else if !errors.Is(err, promotionsports.ErrNotFound) {
			return sum, fmt.Errorf("seed promotion %s: %w", p.ID, err)
		}
		if _, err := svc.Promotions.Create(ctx, p.toInput(now)); err != nil {
			return sum, fmt.Errorf("seed promotion %s: %w", p.ID, err)
		}
		sum.Promotions++
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "demo data seeded",
		slog.Int("seed.users", sum.Users),
		slog.Int("seed.markets", sum.Markets),
		slog.Int("seed.sectors", sum.Sectors),
		slog.Int("seed.products", sum.Products),
		slog.Int("seed.promotions", sum.Promotions),
	)
	return sum, nil
}

func applyUser(ctx context.Context, accounts accountsports.Service, u User, password string) (bool, error) {
	if _, err := accounts.GetUser(ctx, u.ID); err == nil {
		return false, nil
	} else if !errors.Is(err, accountsports.ErrNotFound) {
		return false, err
	}
	input := accountstypes.UserInput{
		ID:       u.ID,
		Name:     &u.Name,
		Email:    &u.Email,
		Password: &password,
		Role:     &u.Role,
		SectorID: optional(u.SectorID),
		Avatar:   optional(u.Avatar),
	}
	if _, err := accounts.CreateUser(ctx, input); err != nil {
		return false, err
	}
	if u.Preferences != nil {
		prefs := accountsdomain.Preferences{
			Categories:           u.Preferences.Categories,
			MaxDistanceKm:        u.Preferences.MaxDistance,
			NotificationsEnabled: u.Preferences.Notifications,
			PreferredMarkets:     u.Preferences.PreferredMarkets,
			DietaryRestrictions:  u.Preferences.DietaryRestrictions,
		}
		if _, err := accounts.UpdateProfile(ctx, u.ID, accountstypes.ProfileUpdate{Preferences: &prefs}); err != nil {
			return true, err
		}
	}
	if u.LoyaltyPoints > 0 {
		if err := accounts.AddLoyaltyPoints(ctx, u.ID, u.LoyaltyPoints); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (m Market) toDomain() *catalogdomain.Market {
	return &catalogdomain.Market{
		ID:                       m.ID,
		Name:                     m.Name,
		Address:                  m.Address,
		Location:                 catalogdomain.Location{Lat: m.Lat, Lng: m.Lng},
		ReferenceDistanceKm:      m.Distance,
		Rating:                   m.Rating,
		IsOpen:                   m.IsOpen,
		OpeningHours:             m.OpeningHours,
		DeliveryAvailable:        m.Delivery,
		PickupAvailable:          m.Pickup,
		EstimatedDeliveryMinutes: m.DeliveryMinutes,
		Phone:                    m.Phone,
		Image:                    m.Image,
	}
}

func (s Sector) toInput() sectorstypes.SectorInput {
	return sectorstypes.SectorInput{
		ID:                s.ID,
		Name:              &s.Name,
		Description:       &s.Description,
		ManagerID:         optional(s.ManagerID),
		EmployeeIDs:       &s.Employees,
		ProductCategories: &s.Categories,
	}
}

func (p Product) toInput(now time.Time) (catalogtypes.ProductInput, error) {
	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return catalogtypes.ProductInput{}, fmt.Errorf("price: %w", err)
	}
	original := price
	if p.OriginalPrice != "" {
		if original, err = decimal.NewFromString(p.OriginalPrice); err != nil {
			return catalogtypes.ProductInput{}, fmt.Errorf("original price: %w", err)
		}
	}
	expiry := now.Add(time.Duration(p.ExpiresInDays) * day).UTC()
	entry := now.Add(-day).UTC()
	in := catalogtypes.ProductInput{
		ID:            p.ID,
		Name:          &p.Name,
		Category:      &p.Category,
		MarketID:      &p.MarketID,
		Price:         &price,
		OriginalPrice: &original,
		Quantity:      &p.Quantity,
		MinQuantity:   &p.MinQuantity,
		ExpiryDate:    &expiry,
		EntryDate:     &entry,
		Images:        &p.Images,
		Rating:        &p.Rating,
		ReviewCount:   &p.ReviewCount,
		Tags:          &p.Tags,
		Barcode:       optional(p.Barcode),
		Brand:         optional(p.Brand),
		SectorID:      optional(p.SectorID),
		Description:   optional(p.Description),
		Supplier:      optional(p.Supplier),
	}
	return in, nil
}

func (p Promotion) toInput(now time.Time) promotionstypes.PromotionInput {
	start := now.UTC()
	end := now.Add(time.Duration(p.EndsInDays) * day).UTC()
	reason := p.Reason
	return promotionstypes.PromotionInput{
		ID:                 p.ID,
		ProductID:          &p.ProductID,
		Title:              &p.Title,
		Description:        &p.Description,
		DiscountPercentage: &p.DiscountPercentage,
		StartDate:          &start,
		EndDate:            &end,
		Reason:             &reason,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
