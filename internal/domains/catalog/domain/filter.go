package domain

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

var (
	ErrInvalidSortField = errors.New("sort field is invalid")
	ErrInvalidSortOrder = errors.New("sort order must be asc or desc")
	ErrInvalidPage      = errors.New("page must be at least 1")
	ErrInvalidLimit     = errors.New("limit must be between 1 and 100")
	ErrInvalidMaxPrice  = errors.New("max price must not be negative")
	ErrInvalidDistance  = errors.New("max distance must not be negative")
)

// SortField names the product attribute used for ordering.
type SortField string

const (
	SortByPrice    SortField = "price"
	SortByDiscount SortField = "discount"
	SortByExpiry   SortField = "expiry"
	SortByDistance SortField = "distance"
	SortByRating   SortField = "rating"
	SortByName     SortField = "name"
)

// SortOrder is ascending or descending.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ProductView is a product enriched with the values derived for one viewer at one instant.
type ProductView struct {
	Product            *Product
	DiscountPercentage int
	DaysToExpiry       int
	IsNearExpiry       bool
	Status             Status
	MarketDistance     float64
	IsFavorite         bool
}

// NewProductView derives the read model for a product.
func NewProductView(p *Product, now time.Time, distance float64, favorite bool) ProductView {
	return ProductView{
		Product:            p,
		DiscountPercentage: p.DiscountPercentage(),
		DaysToExpiry:       p.DaysToExpiry(now),
		IsNearExpiry:       p.IsNearExpiry(now),
		Status:             p.Status(now),
		MarketDistance:     distance,
		IsFavorite:         favorite,
	}
}

// ProductFilter combines predicates with AND, then sorts and paginates.
type ProductFilter struct {
	Category       string
	SearchTerm     string
	MaxPrice       *decimal.Decimal
	MaxDistance    *float64
	MarketID       string
	SectorID       string
	Status         Status
	OnlyNearExpiry bool
	OnlyFavorites  bool
	SortBy         SortField
	SortOrder      SortOrder
	Page           int
	Limit          int
}

// Normalize applies defaults and rejects malformed values.
func (f *ProductFilter) Normalize() error {
	f.Category = strings.TrimSpace(f.Category)
	f.SearchTerm = strings.TrimSpace(f.SearchTerm)
	switch f.SortBy {
	case "", SortByPrice, SortByDiscount, SortByExpiry, SortByDistance, SortByRating, SortByName:
	default:
		return ErrInvalidSortField
	}
	switch f.SortOrder {
	case "":
		f.SortOrder = SortAsc
	case SortAsc, SortDesc:
	default:
		return ErrInvalidSortOrder
	}
	if f.Page == 0 {
		f.Page = 1
	}
	if f.Page < 1 {
		return ErrInvalidPage
	}
	if f.Limit == 0 {
		f.Limit = DefaultPageSize
	}
	if f.Limit < 1 || f.Limit > MaxPageSize {
		return ErrInvalidLimit
	}
	if f.MaxPrice != nil && f.MaxPrice.IsNegative() {
		return ErrInvalidMaxPrice
	}
	if f.MaxDistance != nil && *f.MaxDistance < 0 {
		return ErrInvalidDistance
	}
	if f.Status != "" {
		status, err := ParseStatus(string(f.Status))
		if err != nil {
			return err
		}
		f.Status = status
	}
	return nil
}

// Matches reports whether the view satisfies every predicate set on the filter.
func (f ProductFilter) Matches(v ProductView) bool {
	p := v.Product
	if f.Category != "" && !containsFold(p.Category, f.Category) {
		return false
	}
	if f.SearchTerm != "" && !matchesSearch(p, f.SearchTerm) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.MaxDistance != nil && v.MarketDistance > *f.MaxDistance {
		return false
	}
	if f.MarketID != "" && p.MarketID != f.MarketID {
		return false
	}
	if f.SectorID != "" && p.SectorID != f.SectorID {
		return false
	}
	if f.Status != "" && v.Status != f.Status {
		return false
	}
	if f.OnlyNearExpiry && !v.IsNearExpiry {
		return false
	}
	if f.OnlyFavorites && !v.IsFavorite {
		return false
	}
	return true
}

// Apply filters, sorts, and paginates the views.
func (f ProductFilter) Apply(views []ProductView) Page[ProductView] {
	matched := make([]ProductView, 0, len(views))
	for _, v := range views {
		if f.Matches(v) {
			matched = append(matched, v)
		}
	}
	SortViews(matched, f.SortBy, f.SortOrder)
	return Paginate(matched, f.Page, f.Limit)
}

// SortViews orders views in place by a single key. Ties keep their input order.
func SortViews(views []ProductView, by SortField, order SortOrder) {
	if by == "" {
		return
	}
	less := func(a, b ProductView) int {
		switch by {
		case SortByPrice:
			return a.Product.Price.Cmp(b.Product.Price)
		case SortByDiscount:
			return compareInt(a.DiscountPercentage, b.DiscountPercentage)
		case SortByExpiry:
			return compareInt(a.DaysToExpiry, b.DaysToExpiry)
		case SortByDistance:
			return compareFloat(a.MarketDistance, b.MarketDistance)
		case SortByRating:
			return compareFloat(a.Product.Rating, b.Product.Rating)
		case SortByName:
			return strings.Compare(strings.ToLower(a.Product.Name), strings.ToLower(b.Product.Name))
		default:
			return 0
		}
	}
	sort.SliceStable(views, func(i, j int) bool {
		cmp := less(views[i], views[j])
		if order == SortDesc {
			return cmp > 0
		}
		return cmp < 0
	})
}

func matchesSearch(p *Product, term string) bool {
	if containsFold(p.Name, term) || containsFold(p.Brand, term) {
		return true
	}
	for _, tag := range p.Tags {
		if containsFold(tag, term) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
